package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type MaintenanceType string

const (
	MaintenanceOilFilters MaintenanceType = "OLEO_FILTROS_PASTILHAS"
	MaintenanceTyres      MaintenanceType = "PNEUS"
	MaintenanceOther      MaintenanceType = "OUTROS"
)

func ParseMaintenanceType(raw string) (MaintenanceType, error) {
	switch t := MaintenanceType(strings.ToUpper(strings.TrimSpace(raw))); t {
	case MaintenanceOilFilters, MaintenanceTyres, MaintenanceOther:
		return t, nil
	default:
		return "", fmt.Errorf("unknown maintenance type %q", raw)
	}
}

type Maintenance struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	TruckID     uuid.UUID       `gorm:"type:uuid" json:"truck_id"`
	Type        MaintenanceType `json:"type"`
	PerformedAt time.Time       `json:"performed_at"`
	KmPerformed float64         `json:"km_performed"`
	Notes       string          `json:"notes"`
	Cost        float64         `json:"cost"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (Maintenance) TableName() string {
	return "maintenance_records"
}

type AlertLevel string

const (
	AlertNeverRegistered AlertLevel = "NEVER_REGISTERED"
	AlertDue             AlertLevel = "DUE"
	AlertUpcoming        AlertLevel = "UPCOMING"
)

type MaintenanceAlert struct {
	Type        MaintenanceType `json:"type"`
	Level       AlertLevel      `json:"level"`
	KmSinceLast float64         `json:"km_since_last"`
	KmRemaining float64         `json:"km_remaining"`
	Message     string          `json:"message"`
}
