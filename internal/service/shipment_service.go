package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/fleet-logistics/internal/model"
)

type ShipmentService struct {
	tx        Transactor
	shipments ShipmentStore
	boxes     BoxStore
	clients   ClientStore
	carriers  CarrierStore
	trips     TripStore
	pricing   *Pricing
	log       zerolog.Logger
}

func NewShipmentService(
	tx Transactor,
	shipments ShipmentStore,
	boxes BoxStore,
	clients ClientStore,
	carriers CarrierStore,
	trips TripStore,
	pricing *Pricing,
	log zerolog.Logger,
) *ShipmentService {
	return &ShipmentService{
		tx:        tx,
		shipments: shipments,
		boxes:     boxes,
		clients:   clients,
		carriers:  carriers,
		trips:     trips,
		pricing:   pricing,
		log:       log,
	}
}

type ShipmentInput struct {
	Product       string
	Length        float64
	Width         float64
	Height        float64
	Weight        float64
	Quantity      int
	Origin        string
	Destination   string
	PickupAt      *time.Time
	PaymentStatus string
	BoxID         uuid.UUID
	ClientID      *uuid.UUID
	CarrierID     *uuid.UUID
}

type QuoteInput struct {
	Weight      float64
	Length      float64
	Width       float64
	Height      float64
	Quantity    int
	Origin      string
	Destination string
}

func (s *ShipmentService) Register(ctx context.Context, input ShipmentInput) (*model.Shipment, error) {
	freight, err := s.priceInput(ctx, input)
	if err != nil {
		return nil, err
	}

	shipment := &model.Shipment{}
	applyShipmentInput(shipment, input, freight)
	shipment.ResetStatus()

	if err := s.shipments.Create(ctx, shipment); err != nil {
		return nil, storeError(err, "shipment", shipment.ID)
	}

	s.log.Info().
		Str("shipment_id", shipment.ID.String()).
		Float64("freight", shipment.Freight).
		Msg("shipment registered")
	return shipment, nil
}

// Update re-checks the box and re-prices. Statuses are left as they are.
func (s *ShipmentService) Update(ctx context.Context, id uuid.UUID, input ShipmentInput) (*model.Shipment, error) {
	freight, err := s.priceInput(ctx, input)
	if err != nil {
		return nil, err
	}

	var updated *model.Shipment
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		shipment, err := s.shipments.GetForUpdate(ctx, id)
		if err != nil {
			return storeError(err, "shipment", id)
		}
		applyShipmentInput(shipment, input, freight)
		if err := s.shipments.Update(ctx, shipment); err != nil {
			return err
		}
		updated = shipment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *ShipmentService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.shipments.GetForUpdate(ctx, id); err != nil {
			return storeError(err, "shipment", id)
		}
		attached, err := s.trips.HasShipment(ctx, id)
		if err != nil {
			return err
		}
		if attached {
			return fmt.Errorf("%w: %s", ErrShipmentInTrip, id)
		}
		return storeError(s.shipments.Delete(ctx, id), "shipment", id)
	})
}

func (s *ShipmentService) Get(ctx context.Context, id uuid.UUID) (*model.Shipment, error) {
	shipment, err := s.shipments.Get(ctx, id)
	if err != nil {
		return nil, storeError(err, "shipment", id)
	}
	return shipment, nil
}

func (s *ShipmentService) List(ctx context.Context) ([]model.Shipment, error) {
	return s.shipments.List(ctx)
}

func (s *ShipmentService) ListByBox(ctx context.Context, boxID uuid.UUID) ([]model.Shipment, error) {
	if _, err := s.boxes.Get(ctx, boxID); err != nil {
		return nil, storeError(err, "box", boxID)
	}
	return s.shipments.ListByBox(ctx, boxID)
}

func (s *ShipmentService) UpdateDriverStatus(ctx context.Context, id uuid.UUID, status model.DeliveryStatus) (*model.Shipment, error) {
	return s.mutateStatus(ctx, id, status, (*model.Shipment).SetDriverStatus)
}

func (s *ShipmentService) UpdateClientStatus(ctx context.Context, id uuid.UUID, status model.DeliveryStatus) (*model.Shipment, error) {
	return s.mutateStatus(ctx, id, status, (*model.Shipment).SetClientStatus)
}

// UpdateOverallStatus sets both sides at once.
func (s *ShipmentService) UpdateOverallStatus(ctx context.Context, id uuid.UUID, status model.DeliveryStatus) (*model.Shipment, error) {
	return s.mutateStatus(ctx, id, status, (*model.Shipment).SetOverallStatus)
}

func (s *ShipmentService) mutateStatus(
	ctx context.Context,
	id uuid.UUID,
	status model.DeliveryStatus,
	apply func(*model.Shipment, model.DeliveryStatus),
) (*model.Shipment, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}

	var updated *model.Shipment
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		shipment, err := s.shipments.GetForUpdate(ctx, id)
		if err != nil {
			return storeError(err, "shipment", id)
		}
		apply(shipment, status)
		if err := s.shipments.Update(ctx, shipment); err != nil {
			return err
		}
		updated = shipment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ListAvailableCarrierQuotes prices the load once per active carrier, cheapest first.
func (s *ShipmentService) ListAvailableCarrierQuotes(ctx context.Context, input QuoteInput) ([]model.CarrierQuote, error) {
	if input.Weight <= 0 || input.Length <= 0 || input.Width <= 0 || input.Height <= 0 {
		return nil, fmt.Errorf("%w: weight and dimensions must be positive", ErrInvalidInput)
	}
	if input.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}
	if strings.TrimSpace(input.Origin) == "" || strings.TrimSpace(input.Destination) == "" {
		return nil, fmt.Errorf("%w: origin and destination are required", ErrInvalidInput)
	}

	carriers, err := s.carriers.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if len(carriers) == 0 {
		return []model.CarrierQuote{}, nil
	}

	estimate := s.pricing.routes.Estimate(ctx, input.Origin, input.Destination)
	cubic := s.pricing.CubicWeight(input.Length, input.Width, input.Height)

	quotes := make([]model.CarrierQuote, 0, len(carriers))
	for i := range carriers {
		carrier := carriers[i]
		breakdown := s.pricing.price(FreightInput{
			WeightReal:  input.Weight,
			WeightCubic: cubic,
			BoxCount:    input.Quantity,
			Origin:      input.Origin,
			Destination: input.Destination,
			Rates:       s.pricing.RatesFor(&carrier),
		}, estimate.DistanceKm, estimate.Toll)

		quotes = append(quotes, model.CarrierQuote{
			CarrierID: carrier.ID,
			Name:      carrier.Name,
			CNPJ:      carrier.CNPJ,
			Rating:    carrier.Rating,
			Freight:   breakdown.Freight,
		})
	}

	sort.SliceStable(quotes, func(i, j int) bool {
		return quotes[i].Freight < quotes[j].Freight
	})
	return quotes, nil
}

func (s *ShipmentService) priceInput(ctx context.Context, input ShipmentInput) (float64, error) {
	if err := validateShipmentInput(input); err != nil {
		return 0, err
	}

	box, err := s.boxes.Get(ctx, input.BoxID)
	if err != nil {
		return 0, storeError(err, "box", input.BoxID)
	}
	if !box.Fits(input.Length, input.Width, input.Height, input.Weight) {
		return 0, fmt.Errorf("%w: box %s", ErrBoxIncompatible, box.ID)
	}

	if input.ClientID != nil {
		if _, err := s.clients.Get(ctx, *input.ClientID); err != nil {
			return 0, storeError(err, "client", *input.ClientID)
		}
	}

	var carrier *model.Carrier
	if input.CarrierID != nil {
		carrier, err = s.carriers.Get(ctx, *input.CarrierID)
		if err != nil {
			return 0, storeError(err, "carrier", *input.CarrierID)
		}
		if !carrier.Active {
			return 0, fmt.Errorf("%w: %s", ErrCarrierInactive, carrier.ID)
		}
	}

	breakdown := s.pricing.CalculateFreight(ctx, FreightInput{
		WeightReal:  input.Weight,
		WeightCubic: s.pricing.CubicWeight(input.Length, input.Width, input.Height),
		BoxCount:    input.Quantity,
		Origin:      input.Origin,
		Destination: input.Destination,
		Rates:       s.pricing.RatesFor(carrier),
	})
	return breakdown.Freight, nil
}

func validateShipmentInput(input ShipmentInput) error {
	if strings.TrimSpace(input.Product) == "" {
		return fmt.Errorf("%w: product is required", ErrInvalidInput)
	}
	if input.Length <= 0 || input.Width <= 0 || input.Height <= 0 {
		return fmt.Errorf("%w: dimensions must be positive", ErrInvalidInput)
	}
	if input.Weight <= 0 {
		return fmt.Errorf("%w: weight must be positive", ErrInvalidInput)
	}
	if input.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}
	if strings.TrimSpace(input.Origin) == "" || strings.TrimSpace(input.Destination) == "" {
		return fmt.Errorf("%w: origin and destination are required", ErrInvalidInput)
	}
	if input.BoxID == uuid.Nil {
		return fmt.Errorf("%w: box_id is required", ErrInvalidInput)
	}
	switch input.PaymentStatus {
	case "", model.PaymentPending, model.PaymentPaid:
	default:
		return fmt.Errorf("%w: unknown payment status %q", ErrInvalidInput, input.PaymentStatus)
	}
	return nil
}

func applyShipmentInput(shipment *model.Shipment, input ShipmentInput, freight float64) {
	boxID := input.BoxID
	shipment.Product = strings.TrimSpace(input.Product)
	shipment.Length = input.Length
	shipment.Width = input.Width
	shipment.Height = input.Height
	shipment.Weight = input.Weight
	shipment.Quantity = input.Quantity
	shipment.Origin = strings.TrimSpace(input.Origin)
	shipment.Destination = strings.TrimSpace(input.Destination)
	shipment.PickupAt = input.PickupAt
	shipment.BoxID = &boxID
	shipment.ClientID = input.ClientID
	shipment.CarrierID = input.CarrierID
	shipment.Freight = freight
	if input.PaymentStatus != "" {
		shipment.PaymentStatus = input.PaymentStatus
	}
	if shipment.PaymentStatus == "" {
		shipment.PaymentStatus = model.PaymentPending
	}
}
