package model

import (
	"time"

	"github.com/google/uuid"
)

// Box dimensions are in meters and capacity in kilograms. Depth is compared
// against the product length.
type Box struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Material   string    `json:"material"`
	CapacityKg float64   `json:"capacity_kg"`
	Available  bool      `json:"available"`
	Height     float64   `json:"height"`
	Width      float64   `json:"width"`
	Depth      float64   `json:"depth"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Box) TableName() string {
	return "boxes"
}

func (b Box) Volume() float64 {
	return b.Height * b.Width * b.Depth
}

// Fits reports whether a product fits inside the box. Bounds are inclusive.
func (b Box) Fits(length, width, height, weight float64) bool {
	return length <= b.Depth &&
		width <= b.Width &&
		height <= b.Height &&
		weight <= b.CapacityKg
}
