package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/fleet-logistics/internal/model"
)

func TestDispatchTrip(t *testing.T) {
	f := newFixture()
	truck := f.addTruck(1000, 5, 2, 2, 1200)
	driver := f.addDriver(true, true)
	first := f.addShipment(model.StatusRequested, 10, 0.1, 0.1, 0.1)
	second := f.addShipment(model.StatusRequested, 20, 0.1, 0.1, 0.1)

	trip, err := f.tripService().Register(context.Background(), DispatchInput{
		TruckID:     truck.ID,
		DriverID:    driver.ID,
		ShipmentIDs: []uuid.UUID{first.ID, second.ID},
		DepartureKm: 1200,
	})
	require.NoError(t, err)

	assert.False(t, trip.Finalized)
	assert.Equal(t, 1200.0, trip.DepartureKm)
	assert.Len(t, trip.Shipments, 2)
	for _, shipment := range trip.Shipments {
		assert.Equal(t, model.StatusPickup, shipment.StatusOverall)
	}
	for _, id := range []uuid.UUID{first.ID, second.ID} {
		stored := f.shipments.rows[id]
		assert.Equal(t, model.StatusPickup, stored.StatusDriver)
		assert.Equal(t, model.StatusPickup, stored.StatusClient)
		assert.Equal(t, model.StatusPickup, stored.StatusOverall)
	}
	assert.False(t, f.drivers.rows[driver.ID].Available)
	assert.Len(t, f.trips.rows, 1)
}

func TestDispatchTripPreconditionsMutateNothing(t *testing.T) {
	cases := []struct {
		name    string
		prepare func(f *fixture) DispatchInput
		want    error
	}{
		{
			name: "shipment not requested",
			prepare: func(f *fixture) DispatchInput {
				truck := f.addTruck(1000, 5, 2, 2, 100)
				driver := f.addDriver(true, true)
				ok := f.addShipment(model.StatusRequested, 1, 0.1, 0.1, 0.1)
				busy := f.addShipment(model.StatusPickup, 1, 0.1, 0.1, 0.1)
				return DispatchInput{TruckID: truck.ID, DriverID: driver.ID, ShipmentIDs: []uuid.UUID{ok.ID, busy.ID}, DepartureKm: 100}
			},
			want: ErrShipmentStatus,
		},
		{
			name: "driver inactive",
			prepare: func(f *fixture) DispatchInput {
				truck := f.addTruck(1000, 5, 2, 2, 100)
				driver := f.addDriver(false, true)
				ok := f.addShipment(model.StatusRequested, 1, 0.1, 0.1, 0.1)
				return DispatchInput{TruckID: truck.ID, DriverID: driver.ID, ShipmentIDs: []uuid.UUID{ok.ID}, DepartureKm: 100}
			},
			want: ErrDriverInactive,
		},
		{
			name: "driver unavailable",
			prepare: func(f *fixture) DispatchInput {
				truck := f.addTruck(1000, 5, 2, 2, 100)
				driver := f.addDriver(true, false)
				ok := f.addShipment(model.StatusRequested, 1, 0.1, 0.1, 0.1)
				return DispatchInput{TruckID: truck.ID, DriverID: driver.ID, ShipmentIDs: []uuid.UUID{ok.ID}, DepartureKm: 100}
			},
			want: ErrDriverUnavailable,
		},
		{
			name: "odometer behind truck",
			prepare: func(f *fixture) DispatchInput {
				truck := f.addTruck(1000, 5, 2, 2, 100)
				driver := f.addDriver(true, true)
				ok := f.addShipment(model.StatusRequested, 1, 0.1, 0.1, 0.1)
				return DispatchInput{TruckID: truck.ID, DriverID: driver.ID, ShipmentIDs: []uuid.UUID{ok.ID}, DepartureKm: 99.9}
			},
			want: ErrOdometerRegression,
		},
		{
			name: "missing shipment",
			prepare: func(f *fixture) DispatchInput {
				truck := f.addTruck(1000, 5, 2, 2, 100)
				driver := f.addDriver(true, true)
				ok := f.addShipment(model.StatusRequested, 1, 0.1, 0.1, 0.1)
				return DispatchInput{TruckID: truck.ID, DriverID: driver.ID, ShipmentIDs: []uuid.UUID{ok.ID, uuid.New()}, DepartureKm: 100}
			},
			want: ErrNotFound,
		},
		{
			name: "repeated shipment id",
			prepare: func(f *fixture) DispatchInput {
				truck := f.addTruck(1000, 5, 2, 2, 100)
				driver := f.addDriver(true, true)
				ok := f.addShipment(model.StatusRequested, 1, 0.1, 0.1, 0.1)
				return DispatchInput{TruckID: truck.ID, DriverID: driver.ID, ShipmentIDs: []uuid.UUID{ok.ID, ok.ID}, DepartureKm: 100}
			},
			want: ErrNotFound,
		},
		{
			name: "missing truck",
			prepare: func(f *fixture) DispatchInput {
				driver := f.addDriver(true, true)
				ok := f.addShipment(model.StatusRequested, 1, 0.1, 0.1, 0.1)
				return DispatchInput{TruckID: uuid.New(), DriverID: driver.ID, ShipmentIDs: []uuid.UUID{ok.ID}, DepartureKm: 100}
			},
			want: ErrNotFound,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			input := tc.prepare(f)
			shipmentsBefore := copyRows(f.shipments.rows)
			driversBefore := copyRows(f.drivers.rows)
			trucksBefore := copyRows(f.trucks.rows)

			_, err := f.tripService().Register(context.Background(), input)

			assert.ErrorIs(t, err, tc.want)
			assert.Equal(t, shipmentsBefore, f.shipments.rows)
			assert.Equal(t, driversBefore, f.drivers.rows)
			assert.Equal(t, trucksBefore, f.trucks.rows)
			assert.Empty(t, f.trips.rows)
		})
	}
}

func TestDispatchBusinessErrorsAreNotNotFound(t *testing.T) {
	f := newFixture()
	truck := f.addTruck(1000, 5, 2, 2, 0)
	driver := f.addDriver(false, true)
	shipment := f.addShipment(model.StatusRequested, 1, 0.1, 0.1, 0.1)

	_, err := f.tripService().Register(context.Background(), DispatchInput{
		TruckID: truck.ID, DriverID: driver.ID, ShipmentIDs: []uuid.UUID{shipment.ID},
	})

	assert.ErrorIs(t, err, ErrBusinessRule)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestFinalizeTrip(t *testing.T) {
	f := newFixture()
	truck := f.addTruck(1000, 5, 2, 2, 500)
	driver := f.addDriver(true, true)
	stays := f.addShipment(model.StatusRequested, 1, 0.1, 0.1, 0.1)
	moved := f.addShipment(model.StatusRequested, 1, 0.1, 0.1, 0.1)
	svc := f.tripService()
	ctx := context.Background()

	trip, err := svc.Register(ctx, DispatchInput{
		TruckID: truck.ID, DriverID: driver.ID,
		ShipmentIDs: []uuid.UUID{stays.ID, moved.ID}, DepartureKm: 510,
	})
	require.NoError(t, err)

	_, err = f.shipmentService().UpdateOverallStatus(ctx, moved.ID, model.StatusEnRoute)
	require.NoError(t, err)

	done, err := svc.Finalize(ctx, trip.ID, FinalizeInput{ArrivalKm: 760, FuelLiters: 80})
	require.NoError(t, err)

	assert.True(t, done.Finalized)
	assert.NotNil(t, done.ArrivedAt)
	assert.Equal(t, 250.0, done.DistanceKm())
	assert.Equal(t, 760.0, f.trucks.rows[truck.ID].CurrentKm)
	assert.Equal(t, model.StatusProcessing, f.shipments.rows[stays.ID].StatusOverall)
	assert.Equal(t, model.StatusEnRoute, f.shipments.rows[moved.ID].StatusOverall)
	assert.True(t, f.drivers.rows[driver.ID].Available)
	assert.True(t, f.trips.rows[trip.ID].Finalized)
}

func TestFinalizeTwiceFails(t *testing.T) {
	f := newFixture()
	truck := f.addTruck(1000, 5, 2, 2, 0)
	driver := f.addDriver(true, true)
	shipment := f.addShipment(model.StatusRequested, 1, 0.1, 0.1, 0.1)
	svc := f.tripService()
	ctx := context.Background()

	trip, err := svc.Register(ctx, DispatchInput{
		TruckID: truck.ID, DriverID: driver.ID, ShipmentIDs: []uuid.UUID{shipment.ID},
	})
	require.NoError(t, err)

	_, err = svc.Finalize(ctx, trip.ID, FinalizeInput{ArrivalKm: 300})
	require.NoError(t, err)

	_, err = svc.Finalize(ctx, trip.ID, FinalizeInput{ArrivalKm: 900})
	assert.ErrorIs(t, err, ErrTripFinalized)
	assert.ErrorIs(t, err, ErrBusinessRule)
	assert.Equal(t, 300.0, f.trucks.rows[truck.ID].CurrentKm)
}

func TestFinalizeRejectsOdometerRegression(t *testing.T) {
	f := newFixture()
	truck := f.addTruck(1000, 5, 2, 2, 100)
	driver := f.addDriver(true, true)
	shipment := f.addShipment(model.StatusRequested, 1, 0.1, 0.1, 0.1)
	svc := f.tripService()

	trip, err := svc.Register(context.Background(), DispatchInput{
		TruckID: truck.ID, DriverID: driver.ID, ShipmentIDs: []uuid.UUID{shipment.ID}, DepartureKm: 150,
	})
	require.NoError(t, err)

	_, err = svc.Finalize(context.Background(), trip.ID, FinalizeInput{ArrivalKm: 149})
	assert.ErrorIs(t, err, ErrOdometerRegression)
	assert.False(t, f.trips.rows[trip.ID].Finalized)

	_, err = svc.Finalize(context.Background(), uuid.New(), FinalizeInput{ArrivalKm: 500})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFinalizeKeepsInactiveDriverUnavailable(t *testing.T) {
	f := newFixture()
	truck := f.addTruck(1000, 5, 2, 2, 0)
	driver := f.addDriver(true, true)
	shipment := f.addShipment(model.StatusRequested, 1, 0.1, 0.1, 0.1)
	svc := f.tripService()

	trip, err := svc.Register(context.Background(), DispatchInput{
		TruckID: truck.ID, DriverID: driver.ID, ShipmentIDs: []uuid.UUID{shipment.ID},
	})
	require.NoError(t, err)

	stored := f.drivers.rows[driver.ID]
	stored.Active = false
	f.drivers.rows[driver.ID] = stored

	_, err = svc.Finalize(context.Background(), trip.ID, FinalizeInput{ArrivalKm: 10})
	require.NoError(t, err)
	assert.False(t, f.drivers.rows[driver.ID].Available)
}

func copyRows[T any](rows map[uuid.UUID]T) map[uuid.UUID]T {
	out := make(map[uuid.UUID]T, len(rows))
	for k, v := range rows {
		out[k] = v
	}
	return out
}
