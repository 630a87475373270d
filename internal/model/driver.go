package model

import (
	"time"

	"github.com/google/uuid"
)

type Driver struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string    `json:"name"`
	CPF           string    `gorm:"column:cpf" json:"cpf"`
	CNH           string    `gorm:"column:cnh" json:"cnh"`
	WhatsappPhone string    `json:"whatsapp_phone"`
	Latitude      *float64  `json:"latitude,omitempty"`
	Longitude     *float64  `json:"longitude,omitempty"`
	Active        bool      `json:"active"`
	Available     bool      `json:"available"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Driver) TableName() string {
	return "drivers"
}

func (d Driver) CanDispatch() bool {
	return d.Active && d.Available
}
