package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sideStatuses = []DeliveryStatus{
	StatusRequested,
	StatusPickup,
	StatusProcessing,
	StatusEnRoute,
	StatusDelivered,
}

func TestDeriveOverallForEveryPair(t *testing.T) {
	for _, driver := range sideStatuses {
		for _, client := range sideStatuses {
			got := DeriveOverall(driver, client)
			if driver == StatusDelivered && client == StatusDelivered {
				assert.Equal(t, StatusFinalized, got)
				continue
			}
			want := driver
			if client.Rank() < driver.Rank() {
				want = client
			}
			assert.Equal(t, want, got, "driver=%s client=%s", driver, client)
			assert.NotEqual(t, StatusFinalized, got)
		}
	}
}

func TestShipmentStatusUpdates(t *testing.T) {
	var s Shipment
	s.ResetStatus()
	assert.Equal(t, StatusRequested, s.StatusOverall)

	s.SetDriverStatus(StatusDelivered)
	assert.Equal(t, StatusRequested, s.StatusOverall)

	s.SetClientStatus(StatusEnRoute)
	assert.Equal(t, StatusEnRoute, s.StatusOverall)

	s.SetClientStatus(StatusDelivered)
	assert.Equal(t, StatusFinalized, s.StatusOverall)

	s.SetOverallStatus(StatusPickup)
	assert.Equal(t, StatusPickup, s.StatusDriver)
	assert.Equal(t, StatusPickup, s.StatusClient)
	assert.Equal(t, StatusPickup, s.StatusOverall)
}

func TestStatusRankOrder(t *testing.T) {
	for i := 1; i < len(sideStatuses); i++ {
		assert.True(t, sideStatuses[i-1].Before(sideStatuses[i]))
	}
	assert.True(t, StatusDelivered.Before(StatusFinalized))
	assert.Equal(t, -1, DeliveryStatus("PERDIDO").Rank())
}

func TestParseDeliveryStatus(t *testing.T) {
	status, err := ParseDeliveryStatus(" em_processamento ")
	require.NoError(t, err)
	assert.Equal(t, StatusProcessing, status)

	_, err = ParseDeliveryStatus("perdido")
	assert.Error(t, err)
}
