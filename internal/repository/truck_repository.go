package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/fleet-logistics/internal/model"
)

type TruckRepository struct {
	db *gorm.DB
}

func NewTruckRepository(db *gorm.DB) *TruckRepository {
	return &TruckRepository{db: db}
}

func (r *TruckRepository) Create(ctx context.Context, truck *model.Truck) error {
	if truck.ID == uuid.Nil {
		truck.ID = uuid.New()
	}
	return conn(ctx, r.db).Create(truck).Error
}

func (r *TruckRepository) Get(ctx context.Context, id uuid.UUID) (*model.Truck, error) {
	var truck model.Truck
	if err := conn(ctx, r.db).First(&truck, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &truck, nil
}

func (r *TruckRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*model.Truck, error) {
	var truck model.Truck
	if err := forUpdate(conn(ctx, r.db)).First(&truck, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &truck, nil
}

func (r *TruckRepository) List(ctx context.Context) ([]model.Truck, error) {
	var trucks []model.Truck
	err := conn(ctx, r.db).Order("plate").Find(&trucks).Error
	return trucks, err
}

func (r *TruckRepository) Update(ctx context.Context, truck *model.Truck) error {
	return conn(ctx, r.db).Save(truck).Error
}
