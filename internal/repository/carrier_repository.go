package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/fleet-logistics/internal/model"
)

type CarrierRepository struct {
	db *gorm.DB
}

func NewCarrierRepository(db *gorm.DB) *CarrierRepository {
	return &CarrierRepository{db: db}
}

func (r *CarrierRepository) Create(ctx context.Context, carrier *model.Carrier) error {
	if carrier.ID == uuid.Nil {
		carrier.ID = uuid.New()
	}
	return conn(ctx, r.db).Create(carrier).Error
}

func (r *CarrierRepository) Get(ctx context.Context, id uuid.UUID) (*model.Carrier, error) {
	var carrier model.Carrier
	if err := conn(ctx, r.db).First(&carrier, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &carrier, nil
}

func (r *CarrierRepository) List(ctx context.Context) ([]model.Carrier, error) {
	var carriers []model.Carrier
	err := conn(ctx, r.db).Order("name").Find(&carriers).Error
	return carriers, err
}

func (r *CarrierRepository) ListActive(ctx context.Context) ([]model.Carrier, error) {
	var carriers []model.Carrier
	err := conn(ctx, r.db).Where("active = ?", true).Order("name").Find(&carriers).Error
	return carriers, err
}

func (r *CarrierRepository) Update(ctx context.Context, carrier *model.Carrier) error {
	return conn(ctx, r.db).Save(carrier).Error
}
