package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/fleet-logistics/internal/model"
)

type EvaluationRepository struct {
	db *gorm.DB
}

func NewEvaluationRepository(db *gorm.DB) *EvaluationRepository {
	return &EvaluationRepository{db: db}
}

func (r *EvaluationRepository) Create(ctx context.Context, evaluation *model.Evaluation) error {
	if evaluation.ID == uuid.Nil {
		evaluation.ID = uuid.New()
	}
	return conn(ctx, r.db).Create(evaluation).Error
}

func (r *EvaluationRepository) Get(ctx context.Context, id uuid.UUID) (*model.Evaluation, error) {
	var evaluation model.Evaluation
	if err := conn(ctx, r.db).First(&evaluation, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &evaluation, nil
}

func (r *EvaluationRepository) ExistsForShipment(ctx context.Context, shipmentID uuid.UUID) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Model(&model.Evaluation{}).Where("shipment_id = ?", shipmentID).Count(&count).Error
	return count > 0, err
}

// AverageScoreForCarrier averages every evaluation of the carrier's shipments.
// ok is false when the carrier has none.
func (r *EvaluationRepository) AverageScoreForCarrier(ctx context.Context, carrierID uuid.UUID) (float64, bool, error) {
	var row struct {
		Average *float64
	}
	err := conn(ctx, r.db).Raw(`
		SELECT AVG(e.score)::float8 AS average
		FROM evaluations e
		JOIN shipments s ON s.id = e.shipment_id
		WHERE s.carrier_id = ?
	`, carrierID).Scan(&row).Error
	if err != nil {
		return 0, false, err
	}
	if row.Average == nil {
		return 0, false, nil
	}
	return *row.Average, true, nil
}
