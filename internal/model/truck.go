package model

import (
	"time"

	"github.com/google/uuid"
)

type Truck struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Model     string    `json:"model"`
	Brand     string    `json:"brand"`
	Plate     string    `json:"plate"`
	MaxLoad   float64   `json:"max_load"`
	Length    float64   `json:"length"`
	Width     float64   `json:"width"`
	Height    float64   `json:"height"`
	Year      int       `json:"year"`
	CurrentKm float64   `json:"current_km"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Truck) TableName() string {
	return "trucks"
}

// Volume is the internal cargo volume in cubic meters.
func (t Truck) Volume() float64 {
	return t.Length * t.Width * t.Height
}
