package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nurpe/fleet-logistics/internal/model"
	"github.com/nurpe/fleet-logistics/internal/routing"
)

type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type RouteEstimator interface {
	Estimate(ctx context.Context, origin, destination string) routing.Estimate
}

type TruckStore interface {
	Create(ctx context.Context, truck *model.Truck) error
	Get(ctx context.Context, id uuid.UUID) (*model.Truck, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*model.Truck, error)
	List(ctx context.Context) ([]model.Truck, error)
	Update(ctx context.Context, truck *model.Truck) error
}

type DriverStore interface {
	Create(ctx context.Context, driver *model.Driver) error
	Get(ctx context.Context, id uuid.UUID) (*model.Driver, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*model.Driver, error)
	List(ctx context.Context) ([]model.Driver, error)
	FindByCPF(ctx context.Context, cpf string) (*model.Driver, error)
	FindByCNH(ctx context.Context, cnh string) (*model.Driver, error)
	CountAvailable(ctx context.Context) (int64, error)
	Update(ctx context.Context, driver *model.Driver) error
}

type BoxStore interface {
	Create(ctx context.Context, box *model.Box) error
	Get(ctx context.Context, id uuid.UUID) (*model.Box, error)
	List(ctx context.Context) ([]model.Box, error)
	Update(ctx context.Context, box *model.Box) error
}

type ClientStore interface {
	Create(ctx context.Context, client *model.Client) error
	Get(ctx context.Context, id uuid.UUID) (*model.Client, error)
	List(ctx context.Context) ([]model.Client, error)
	Update(ctx context.Context, client *model.Client) error
}

type CarrierStore interface {
	Create(ctx context.Context, carrier *model.Carrier) error
	Get(ctx context.Context, id uuid.UUID) (*model.Carrier, error)
	List(ctx context.Context) ([]model.Carrier, error)
	ListActive(ctx context.Context) ([]model.Carrier, error)
	Update(ctx context.Context, carrier *model.Carrier) error
}

type ShipmentStore interface {
	Create(ctx context.Context, shipment *model.Shipment) error
	Get(ctx context.Context, id uuid.UUID) (*model.Shipment, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*model.Shipment, error)
	GetMany(ctx context.Context, ids []uuid.UUID) ([]model.Shipment, error)
	GetManyForUpdate(ctx context.Context, ids []uuid.UUID) ([]model.Shipment, error)
	List(ctx context.Context) ([]model.Shipment, error)
	ListByBox(ctx context.Context, boxID uuid.UUID) ([]model.Shipment, error)
	Update(ctx context.Context, shipment *model.Shipment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type TripStore interface {
	Create(ctx context.Context, trip *model.Trip) error
	Get(ctx context.Context, id uuid.UUID) (*model.Trip, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*model.Trip, error)
	List(ctx context.Context) ([]model.Trip, error)
	ListOpenByDriver(ctx context.Context, driverID uuid.UUID) ([]model.Trip, error)
	Update(ctx context.Context, trip *model.Trip) error
	HasShipment(ctx context.Context, shipmentID uuid.UUID) (bool, error)
}

type MaintenanceStore interface {
	Create(ctx context.Context, record *model.Maintenance) error
	ListByTruck(ctx context.Context, truckID uuid.UUID) ([]model.Maintenance, error)
	Last(ctx context.Context, truckID uuid.UUID, kind model.MaintenanceType) (*model.Maintenance, error)
}

type EvaluationStore interface {
	Create(ctx context.Context, evaluation *model.Evaluation) error
	Get(ctx context.Context, id uuid.UUID) (*model.Evaluation, error)
	ExistsForShipment(ctx context.Context, shipmentID uuid.UUID) (bool, error)
	AverageScoreForCarrier(ctx context.Context, carrierID uuid.UUID) (float64, bool, error)
}

type NotificationStore interface {
	Create(ctx context.Context, notification *model.Notification) error
}

func now() time.Time {
	return time.Now().UTC()
}
