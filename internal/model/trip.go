package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Trip struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	TruckID     uuid.UUID  `gorm:"type:uuid" json:"truck_id"`
	DriverID    uuid.UUID  `gorm:"type:uuid" json:"driver_id"`
	DepartedAt  time.Time  `json:"departed_at"`
	ArrivedAt   *time.Time `json:"arrived_at,omitempty"`
	DepartureKm float64    `json:"departure_km"`
	ArrivalKm   *float64   `json:"arrival_km,omitempty"`
	FuelLiters  *float64   `json:"fuel_liters,omitempty"`
	Finalized   bool       `json:"finalized"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Shipments   []Shipment `gorm:"-" json:"shipments"`
}

func (Trip) TableName() string {
	return "trips"
}

// DistanceKm is zero until the trip has an arrival reading.
func (t Trip) DistanceKm() float64 {
	if t.ArrivalKm == nil {
		return 0
	}
	distance := *t.ArrivalKm - t.DepartureKm
	if distance < 0 {
		return 0
	}
	return distance
}

// MarshalJSON adds the computed distance_km to the stored columns.
func (t Trip) MarshalJSON() ([]byte, error) {
	type columns Trip
	return json.Marshal(struct {
		columns
		DistanceKm float64 `json:"distance_km"`
	}{columns: columns(t), DistanceKm: t.DistanceKm()})
}

func (t Trip) ShipmentIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(t.Shipments))
	for _, shipment := range t.Shipments {
		ids = append(ids, shipment.ID)
	}
	return ids
}

type TripShipment struct {
	TripID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShipmentID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (TripShipment) TableName() string {
	return "trip_shipments"
}
