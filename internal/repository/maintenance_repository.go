package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/fleet-logistics/internal/model"
)

type MaintenanceRepository struct {
	db *gorm.DB
}

func NewMaintenanceRepository(db *gorm.DB) *MaintenanceRepository {
	return &MaintenanceRepository{db: db}
}

func (r *MaintenanceRepository) Create(ctx context.Context, record *model.Maintenance) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	return conn(ctx, r.db).Create(record).Error
}

func (r *MaintenanceRepository) ListByTruck(ctx context.Context, truckID uuid.UUID) ([]model.Maintenance, error) {
	var records []model.Maintenance
	err := conn(ctx, r.db).
		Where("truck_id = ?", truckID).
		Order("performed_at DESC").
		Find(&records).Error
	return records, err
}

// Last returns the record with the highest odometer reading for the truck and type.
func (r *MaintenanceRepository) Last(ctx context.Context, truckID uuid.UUID, kind model.MaintenanceType) (*model.Maintenance, error) {
	var record model.Maintenance
	err := conn(ctx, r.db).
		Where("truck_id = ? AND type = ?", truckID, kind).
		Order("km_performed DESC").
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}
