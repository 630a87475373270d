package model

import (
	"time"

	"github.com/google/uuid"
)

type NotificationStatus string

const (
	NotificationPending        NotificationStatus = "PENDING"
	NotificationFailed         NotificationStatus = "FAILED"
	NotificationSent           NotificationStatus = "SENT"
	NotificationNoAttemptsLeft NotificationStatus = "NO_ATTEMPTS_LEFT"
)

type Notification struct {
	ID            uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	ShipmentID    uuid.UUID          `gorm:"type:uuid" json:"shipment_id"`
	Recipient     string             `json:"recipient"`
	Message       string             `json:"message"`
	Status        NotificationStatus `json:"status"`
	Attempts      int                `json:"attempts"`
	NextAttemptAt time.Time          `json:"next_attempt_at"`
	LastError     string             `json:"last_error,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
