package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/fleet-logistics/internal/model"
)

type EvaluationService struct {
	tx          Transactor
	evaluations EvaluationStore
	shipments   ShipmentStore
	carriers    CarrierStore
}

func NewEvaluationService(tx Transactor, evaluations EvaluationStore, shipments ShipmentStore, carriers CarrierStore) *EvaluationService {
	return &EvaluationService{
		tx:          tx,
		evaluations: evaluations,
		shipments:   shipments,
		carriers:    carriers,
	}
}

type EvaluationInput struct {
	ShipmentID uuid.UUID
	Score      int
	Comment    string
}

// Register stores the single evaluation a finalized shipment may receive and
// refreshes the carrier rating.
func (s *EvaluationService) Register(ctx context.Context, input EvaluationInput) (*model.Evaluation, error) {
	if input.Score < 1 || input.Score > 5 {
		return nil, fmt.Errorf("%w: score must be between 1 and 5", ErrInvalidInput)
	}

	var created *model.Evaluation
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		shipment, err := s.shipments.GetForUpdate(ctx, input.ShipmentID)
		if err != nil {
			return storeError(err, "shipment", input.ShipmentID)
		}
		if shipment.StatusOverall != model.StatusFinalized {
			return fmt.Errorf("%w: shipment %s is %s, expected %s",
				ErrShipmentStatus, shipment.ID, shipment.StatusOverall, model.StatusFinalized)
		}

		exists, err := s.evaluations.ExistsForShipment(ctx, shipment.ID)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: %s", ErrEvaluationExists, shipment.ID)
		}

		evaluation := &model.Evaluation{
			ShipmentID:  shipment.ID,
			Score:       input.Score,
			Comment:     strings.TrimSpace(input.Comment),
			EvaluatedAt: now(),
		}
		if err := s.evaluations.Create(ctx, evaluation); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: %s", ErrEvaluationExists, shipment.ID)
			}
			return err
		}

		if shipment.CarrierID != nil {
			if err := s.refreshRating(ctx, *shipment.CarrierID); err != nil {
				return err
			}
		}
		created = evaluation
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *EvaluationService) Get(ctx context.Context, id uuid.UUID) (*model.Evaluation, error) {
	evaluation, err := s.evaluations.Get(ctx, id)
	if err != nil {
		return nil, storeError(err, "evaluation", id)
	}
	return evaluation, nil
}

func (s *EvaluationService) refreshRating(ctx context.Context, carrierID uuid.UUID) error {
	average, ok, err := s.evaluations.AverageScoreForCarrier(ctx, carrierID)
	if err != nil || !ok {
		return err
	}
	carrier, err := s.carriers.Get(ctx, carrierID)
	if err != nil {
		return storeError(err, "carrier", carrierID)
	}
	rating := math.Min(math.Max(roundHalfUp(average, 2), 0), 5)
	carrier.Rating = &rating
	return s.carriers.Update(ctx, carrier)
}
