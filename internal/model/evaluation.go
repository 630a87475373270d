package model

import (
	"time"

	"github.com/google/uuid"
)

type Evaluation struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ShipmentID  uuid.UUID `gorm:"type:uuid" json:"shipment_id"`
	Score       int       `json:"score"`
	Comment     string    `json:"comment"`
	EvaluatedAt time.Time `json:"evaluated_at"`
}

func (Evaluation) TableName() string {
	return "evaluations"
}
