package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/fleet-logistics/internal/model"
)

type TrackingService struct {
	tx            Transactor
	drivers       DriverStore
	trips         TripStore
	shipments     ShipmentStore
	clients       ClientStore
	notifications NotificationStore
	log           zerolog.Logger
}

func NewTrackingService(
	tx Transactor,
	drivers DriverStore,
	trips TripStore,
	shipments ShipmentStore,
	clients ClientStore,
	notifications NotificationStore,
	log zerolog.Logger,
) *TrackingService {
	return &TrackingService{
		tx:            tx,
		drivers:       drivers,
		trips:         trips,
		shipments:     shipments,
		clients:       clients,
		notifications: notifications,
		log:           log,
	}
}

type LocationInput struct {
	Latitude  float64
	Longitude float64
}

type TrackingResult struct {
	Driver   model.Driver `json:"driver"`
	EnRoute  []uuid.UUID  `json:"en_route"`
	Notified int          `json:"notified"`
}

// UpdateLocation stores the driver position. When the position looks like a
// real fix, shipments of the driver's open trips that are being processed move
// to en route and the customer is queued a notification.
func (s *TrackingService) UpdateLocation(ctx context.Context, driverID uuid.UUID, input LocationInput) (*TrackingResult, error) {
	if input.Latitude < -90 || input.Latitude > 90 || input.Longitude < -180 || input.Longitude > 180 {
		return nil, fmt.Errorf("%w: coordinates out of range", ErrInvalidInput)
	}

	result := &TrackingResult{EnRoute: []uuid.UUID{}}
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		driver, err := s.drivers.GetForUpdate(ctx, driverID)
		if err != nil {
			return storeError(err, "driver", driverID)
		}
		lat, lng := input.Latitude, input.Longitude
		driver.Latitude = &lat
		driver.Longitude = &lng
		if err := s.drivers.Update(ctx, driver); err != nil {
			return err
		}
		result.Driver = *driver

		if !nearDelivery(input) {
			return nil
		}

		trips, err := s.trips.ListOpenByDriver(ctx, driverID)
		if err != nil {
			return err
		}
		for _, trip := range trips {
			for _, attached := range trip.Shipments {
				if attached.StatusOverall != model.StatusProcessing {
					continue
				}
				shipment, err := s.shipments.GetForUpdate(ctx, attached.ID)
				if err != nil {
					return storeError(err, "shipment", attached.ID)
				}
				if shipment.StatusOverall != model.StatusProcessing {
					continue
				}
				shipment.SetOverallStatus(model.StatusEnRoute)
				if err := s.shipments.Update(ctx, shipment); err != nil {
					return err
				}
				result.EnRoute = append(result.EnRoute, shipment.ID)

				if err := s.enqueue(ctx, driver, shipment); err != nil {
					return err
				}
				result.Notified++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(result.EnRoute) > 0 {
		s.log.Info().
			Str("driver_id", driverID.String()).
			Int("shipments", len(result.EnRoute)).
			Msg("shipments en route")
	}
	return result, nil
}

func (s *TrackingService) enqueue(ctx context.Context, driver *model.Driver, shipment *model.Shipment) error {
	recipient := driver.WhatsappPhone
	if shipment.ClientID != nil {
		client, err := s.clients.Get(ctx, *shipment.ClientID)
		if err != nil {
			return storeError(err, "client", *shipment.ClientID)
		}
		if client.Phone != "" {
			recipient = client.Phone
		}
	}

	return s.notifications.Create(ctx, &model.Notification{
		ShipmentID: shipment.ID,
		Recipient:  recipient,
		Message:    fmt.Sprintf("Seu produto (%s) está a caminho da entrega! Prepare-se para recebê-lo.", shipment.Product),
		Status:     model.NotificationPending,
	})
}

// nearDelivery rejects the 0,0 position some devices report before a GPS fix.
func nearDelivery(input LocationInput) bool {
	return input.Latitude != 0 || input.Longitude != 0
}
