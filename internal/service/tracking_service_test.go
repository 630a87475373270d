package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/fleet-logistics/internal/model"
)

func (f *fixture) trackingService() *TrackingService {
	return NewTrackingService(passthroughTx{}, f.drivers, f.trips, f.shipments, f.clients, f.notifications, zerolog.Nop())
}

// onTheRoad dispatches one shipment and moves it to processing while the trip is still open.
func onTheRoad(t *testing.T, f *fixture) (model.Driver, model.Shipment) {
	t.Helper()
	truck := f.addTruck(1000, 5, 2, 2, 0)
	driver := f.addDriver(true, true)
	shipment := f.addShipment(model.StatusRequested, 1, 0.1, 0.1, 0.1)

	client := model.Client{Name: "Loja", Email: "loja@example.com", Phone: "+5511988887777"}
	require.NoError(t, f.clients.create(&client))
	stored := f.shipments.rows[shipment.ID]
	stored.ClientID = &client.ID
	f.shipments.rows[shipment.ID] = stored

	_, err := f.tripService().Register(context.Background(), DispatchInput{
		TruckID: truck.ID, DriverID: driver.ID, ShipmentIDs: []uuid.UUID{shipment.ID},
	})
	require.NoError(t, err)

	_, err = f.shipmentService().UpdateOverallStatus(context.Background(), shipment.ID, model.StatusProcessing)
	require.NoError(t, err)
	return driver, shipment
}

func TestTrackingAdvancesProcessingShipments(t *testing.T) {
	f := newFixture()
	driver, shipment := onTheRoad(t, f)

	result, err := f.trackingService().UpdateLocation(context.Background(), driver.ID, LocationInput{Latitude: -23.5, Longitude: -47.4})
	require.NoError(t, err)

	assert.Equal(t, []uuid.UUID{shipment.ID}, result.EnRoute)
	assert.Equal(t, 1, result.Notified)
	assert.Equal(t, model.StatusEnRoute, f.shipments.rows[shipment.ID].StatusOverall)
	require.NotNil(t, f.drivers.rows[driver.ID].Latitude)
	assert.Equal(t, -23.5, *f.drivers.rows[driver.ID].Latitude)

	notifications := f.notifications.list()
	require.Len(t, notifications, 1)
	assert.Equal(t, "+5511988887777", notifications[0].Recipient)
	assert.Equal(t, model.NotificationPending, notifications[0].Status)
	assert.Contains(t, notifications[0].Message, "Notebook")

	again, err := f.trackingService().UpdateLocation(context.Background(), driver.ID, LocationInput{Latitude: -23.4, Longitude: -47.3})
	require.NoError(t, err)
	assert.Empty(t, again.EnRoute)
	assert.Len(t, f.notifications.list(), 1)
}

func TestTrackingIgnoresNullIsland(t *testing.T) {
	f := newFixture()
	driver, shipment := onTheRoad(t, f)

	result, err := f.trackingService().UpdateLocation(context.Background(), driver.ID, LocationInput{})
	require.NoError(t, err)

	assert.Empty(t, result.EnRoute)
	assert.Equal(t, model.StatusProcessing, f.shipments.rows[shipment.ID].StatusOverall)
	assert.Empty(t, f.notifications.list())
}

func TestTrackingErrors(t *testing.T) {
	f := newFixture()
	svc := f.trackingService()

	_, err := svc.UpdateLocation(context.Background(), uuid.New(), LocationInput{Latitude: 1, Longitude: 1})
	assert.ErrorIs(t, err, ErrNotFound)

	driver := f.addDriver(true, true)
	_, err = svc.UpdateLocation(context.Background(), driver.ID, LocationInput{Latitude: 91})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
