package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/fleet-logistics/internal/model"
)

type TripService struct {
	tx        Transactor
	trips     TripStore
	trucks    TruckStore
	drivers   DriverStore
	shipments ShipmentStore
	log       zerolog.Logger
}

func NewTripService(
	tx Transactor,
	trips TripStore,
	trucks TruckStore,
	drivers DriverStore,
	shipments ShipmentStore,
	log zerolog.Logger,
) *TripService {
	return &TripService{
		tx:        tx,
		trips:     trips,
		trucks:    trucks,
		drivers:   drivers,
		shipments: shipments,
		log:       log,
	}
}

type DispatchInput struct {
	TruckID     uuid.UUID
	DriverID    uuid.UUID
	ShipmentIDs []uuid.UUID
	DepartureKm float64
}

type FinalizeInput struct {
	ArrivalKm  float64
	FuelLiters float64
}

// Register dispatches a truck with a batch of requested shipments. Every check
// runs against locked rows, so nothing is written unless all of them pass.
func (s *TripService) Register(ctx context.Context, input DispatchInput) (*model.Trip, error) {
	ids, err := uniqueIDs(input.ShipmentIDs)
	if err != nil {
		return nil, err
	}
	if input.DepartureKm < 0 {
		return nil, fmt.Errorf("%w: departure_km must not be negative", ErrInvalidInput)
	}

	var created *model.Trip
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		truck, err := s.trucks.GetForUpdate(ctx, input.TruckID)
		if err != nil {
			return storeError(err, "truck", input.TruckID)
		}
		driver, err := s.drivers.GetForUpdate(ctx, input.DriverID)
		if err != nil {
			return storeError(err, "driver", input.DriverID)
		}
		if !driver.Active {
			return fmt.Errorf("%w: %s", ErrDriverInactive, driver.ID)
		}
		if !driver.Available {
			return fmt.Errorf("%w: %s", ErrDriverUnavailable, driver.ID)
		}
		if input.DepartureKm < truck.CurrentKm {
			return fmt.Errorf("%w: departure km %.1f is below truck km %.1f",
				ErrOdometerRegression, input.DepartureKm, truck.CurrentKm)
		}

		shipments, err := s.shipments.GetManyForUpdate(ctx, ids)
		if err != nil {
			return err
		}
		if len(shipments) != len(input.ShipmentIDs) {
			return fmt.Errorf("%w: one or more shipments not found", ErrNotFound)
		}
		for _, shipment := range shipments {
			if shipment.StatusOverall != model.StatusRequested {
				return fmt.Errorf("%w: shipment %s is %s, expected %s",
					ErrShipmentStatus, shipment.ID, shipment.StatusOverall, model.StatusRequested)
			}
		}

		for i := range shipments {
			shipments[i].SetOverallStatus(model.StatusPickup)
			if err := s.shipments.Update(ctx, &shipments[i]); err != nil {
				return err
			}
		}

		trip := &model.Trip{
			TruckID:     truck.ID,
			DriverID:    driver.ID,
			DepartedAt:  now(),
			DepartureKm: input.DepartureKm,
			Shipments:   shipments,
		}
		if err := s.trips.Create(ctx, trip); err != nil {
			return err
		}

		driver.Available = false
		if err := s.drivers.Update(ctx, driver); err != nil {
			return err
		}

		created = trip
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("trip_id", created.ID.String()).
		Str("truck_id", created.TruckID.String()).
		Str("driver_id", created.DriverID.String()).
		Int("shipments", len(created.Shipments)).
		Msg("trip dispatched")
	return created, nil
}

// Finalize closes a trip once. Only shipments still at COLETA advance; those
// moved by driver or client updates keep their status.
func (s *TripService) Finalize(ctx context.Context, id uuid.UUID, input FinalizeInput) (*model.Trip, error) {
	if input.FuelLiters < 0 {
		return nil, fmt.Errorf("%w: fuel must not be negative", ErrInvalidInput)
	}

	var finalized *model.Trip
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		trip, err := s.trips.GetForUpdate(ctx, id)
		if err != nil {
			return storeError(err, "trip", id)
		}
		if trip.Finalized {
			return fmt.Errorf("%w: %s", ErrTripFinalized, trip.ID)
		}
		if input.ArrivalKm < trip.DepartureKm {
			return fmt.Errorf("%w: arrival km %.1f is below departure km %.1f",
				ErrOdometerRegression, input.ArrivalKm, trip.DepartureKm)
		}

		arrivedAt := now()
		arrivalKm := input.ArrivalKm
		fuel := input.FuelLiters
		trip.ArrivedAt = &arrivedAt
		trip.ArrivalKm = &arrivalKm
		trip.FuelLiters = &fuel
		trip.Finalized = true

		truck, err := s.trucks.GetForUpdate(ctx, trip.TruckID)
		if err != nil {
			return storeError(err, "truck", trip.TruckID)
		}
		truck.CurrentKm = arrivalKm
		if err := s.trucks.Update(ctx, truck); err != nil {
			return err
		}

		shipments, err := s.shipments.GetManyForUpdate(ctx, trip.ShipmentIDs())
		if err != nil {
			return err
		}
		for i := range shipments {
			if shipments[i].StatusOverall != model.StatusPickup {
				continue
			}
			shipments[i].SetOverallStatus(model.StatusProcessing)
			if err := s.shipments.Update(ctx, &shipments[i]); err != nil {
				return err
			}
		}
		trip.Shipments = shipments

		driver, err := s.drivers.GetForUpdate(ctx, trip.DriverID)
		if err != nil {
			return storeError(err, "driver", trip.DriverID)
		}
		if driver.Active {
			driver.Available = true
			if err := s.drivers.Update(ctx, driver); err != nil {
				return err
			}
		}

		if err := s.trips.Update(ctx, trip); err != nil {
			return err
		}
		finalized = trip
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("trip_id", finalized.ID.String()).
		Float64("distance_km", finalized.DistanceKm()).
		Msg("trip finalized")
	return finalized, nil
}

func (s *TripService) Get(ctx context.Context, id uuid.UUID) (*model.Trip, error) {
	trip, err := s.trips.Get(ctx, id)
	if err != nil {
		return nil, storeError(err, "trip", id)
	}
	return trip, nil
}

func (s *TripService) List(ctx context.Context) ([]model.Trip, error) {
	return s.trips.List(ctx)
}

// uniqueIDs returns the distinct ids for lookup. Callers compare the rows found
// against the requested length, so a repeated id counts as missing.
func uniqueIDs(ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: at least one shipment is required", ErrInvalidInput)
	}
	seen := make(map[uuid.UUID]struct{}, len(ids))
	result := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			return nil, fmt.Errorf("%w: empty shipment id", ErrInvalidInput)
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result, nil
}
