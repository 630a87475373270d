package model

import (
	"time"

	"github.com/google/uuid"
)

// Carrier rate fields are optional overrides of the global pricing defaults.
type Carrier struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string    `json:"name"`
	CNPJ       string    `gorm:"column:cnpj" json:"cnpj"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Address    string    `json:"address"`
	Notes      string    `json:"notes"`
	RatePerKm  *float64  `json:"rate_per_km,omitempty"`
	RatePerBox *float64  `json:"rate_per_box,omitempty"`
	RatePerKg  *float64  `json:"rate_per_kg,omitempty"`
	Rating     *float64  `json:"rating,omitempty"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Carrier) TableName() string {
	return "carriers"
}

type CarrierQuote struct {
	CarrierID uuid.UUID `json:"carrier_id"`
	Name      string    `json:"name"`
	CNPJ      string    `json:"cnpj"`
	Rating    *float64  `json:"rating,omitempty"`
	Freight   float64   `json:"freight"`
}
