package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/fleet-logistics/internal/model"
)

type TripRepository struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) *TripRepository {
	return &TripRepository{db: db}
}

// Create stores the trip and links every shipment in trip.Shipments.
func (r *TripRepository) Create(ctx context.Context, trip *model.Trip) error {
	if trip.ID == uuid.Nil {
		trip.ID = uuid.New()
	}
	db := conn(ctx, r.db)
	if err := db.Create(trip).Error; err != nil {
		return err
	}
	if len(trip.Shipments) == 0 {
		return nil
	}

	links := make([]model.TripShipment, 0, len(trip.Shipments))
	for _, shipment := range trip.Shipments {
		links = append(links, model.TripShipment{TripID: trip.ID, ShipmentID: shipment.ID})
	}
	return db.Create(&links).Error
}

func (r *TripRepository) Get(ctx context.Context, id uuid.UUID) (*model.Trip, error) {
	var trip model.Trip
	if err := conn(ctx, r.db).First(&trip, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if err := r.attachShipments(ctx, []*model.Trip{&trip}); err != nil {
		return nil, err
	}
	return &trip, nil
}

// GetForUpdate locks the trip row. Attached shipments are loaded without a lock.
func (r *TripRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*model.Trip, error) {
	var trip model.Trip
	if err := forUpdate(conn(ctx, r.db)).First(&trip, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if err := r.attachShipments(ctx, []*model.Trip{&trip}); err != nil {
		return nil, err
	}
	return &trip, nil
}

func (r *TripRepository) List(ctx context.Context) ([]model.Trip, error) {
	var trips []model.Trip
	if err := conn(ctx, r.db).Order("departed_at DESC").Find(&trips).Error; err != nil {
		return nil, err
	}
	return trips, r.attachShipments(ctx, tripPointers(trips))
}

func (r *TripRepository) ListOpenByDriver(ctx context.Context, driverID uuid.UUID) ([]model.Trip, error) {
	var trips []model.Trip
	err := conn(ctx, r.db).
		Where("driver_id = ? AND finalized = ?", driverID, false).
		Order("departed_at").
		Find(&trips).Error
	if err != nil {
		return nil, err
	}
	return trips, r.attachShipments(ctx, tripPointers(trips))
}

func (r *TripRepository) Update(ctx context.Context, trip *model.Trip) error {
	return conn(ctx, r.db).Save(trip).Error
}

func (r *TripRepository) HasShipment(ctx context.Context, shipmentID uuid.UUID) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Model(&model.TripShipment{}).Where("shipment_id = ?", shipmentID).Count(&count).Error
	return count > 0, err
}

func (r *TripRepository) attachShipments(ctx context.Context, trips []*model.Trip) error {
	if len(trips) == 0 {
		return nil
	}
	tripIDs := make([]uuid.UUID, 0, len(trips))
	for _, trip := range trips {
		tripIDs = append(tripIDs, trip.ID)
	}

	db := conn(ctx, r.db)
	var links []model.TripShipment
	if err := db.Where("trip_id IN ?", tripIDs).Find(&links).Error; err != nil {
		return err
	}
	if len(links) == 0 {
		for _, trip := range trips {
			trip.Shipments = []model.Shipment{}
		}
		return nil
	}

	shipmentIDs := make([]uuid.UUID, 0, len(links))
	for _, link := range links {
		shipmentIDs = append(shipmentIDs, link.ShipmentID)
	}
	var shipments []model.Shipment
	if err := db.Where("id IN ?", shipmentIDs).Order("created_at").Find(&shipments).Error; err != nil {
		return err
	}
	byID := make(map[uuid.UUID]model.Shipment, len(shipments))
	for _, shipment := range shipments {
		byID[shipment.ID] = shipment
	}

	byTrip := make(map[uuid.UUID][]model.Shipment, len(trips))
	for _, link := range links {
		if shipment, ok := byID[link.ShipmentID]; ok {
			byTrip[link.TripID] = append(byTrip[link.TripID], shipment)
		}
	}
	for _, trip := range trips {
		trip.Shipments = byTrip[trip.ID]
		if trip.Shipments == nil {
			trip.Shipments = []model.Shipment{}
		}
	}
	return nil
}

func tripPointers(trips []model.Trip) []*model.Trip {
	result := make([]*model.Trip, len(trips))
	for i := range trips {
		result[i] = &trips[i]
	}
	return result
}
