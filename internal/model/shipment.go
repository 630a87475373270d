package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	PaymentPending = "PENDENTE"
	PaymentPaid    = "PAGO"
)

type Shipment struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Product       string         `json:"product"`
	Length        float64        `json:"length"`
	Width         float64        `json:"width"`
	Height        float64        `json:"height"`
	Weight        float64        `json:"weight"`
	Quantity      int            `json:"quantity"`
	Origin        string         `json:"origin"`
	Destination   string         `json:"destination"`
	Freight       float64        `json:"freight"`
	PickupAt      *time.Time     `json:"pickup_at,omitempty"`
	PaymentStatus string         `json:"payment_status"`
	BoxID         *uuid.UUID     `gorm:"type:uuid" json:"box_id,omitempty"`
	ClientID      *uuid.UUID     `gorm:"type:uuid" json:"client_id,omitempty"`
	CarrierID     *uuid.UUID     `gorm:"type:uuid" json:"carrier_id,omitempty"`
	StatusDriver  DeliveryStatus `json:"status_driver"`
	StatusClient  DeliveryStatus `json:"status_client"`
	StatusOverall DeliveryStatus `json:"status_overall"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func (Shipment) TableName() string {
	return "shipments"
}

func (s Shipment) Volume() float64 {
	return s.Length * s.Width * s.Height
}

// ResetStatus puts every side back at SOLICITADO. Used on creation only.
func (s *Shipment) ResetStatus() {
	s.StatusDriver = StatusRequested
	s.StatusClient = StatusRequested
	s.StatusOverall = StatusRequested
}

func (s *Shipment) SetDriverStatus(status DeliveryStatus) {
	s.StatusDriver = status
	s.recomputeOverall()
}

func (s *Shipment) SetClientStatus(status DeliveryStatus) {
	s.StatusClient = status
	s.recomputeOverall()
}

// SetOverallStatus moves both sides to the same value.
func (s *Shipment) SetOverallStatus(status DeliveryStatus) {
	s.StatusDriver = status
	s.StatusClient = status
	s.recomputeOverall()
}

func (s *Shipment) recomputeOverall() {
	s.StatusOverall = DeriveOverall(s.StatusDriver, s.StatusClient)
}
