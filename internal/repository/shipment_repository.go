package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/fleet-logistics/internal/model"
)

type ShipmentRepository struct {
	db *gorm.DB
}

func NewShipmentRepository(db *gorm.DB) *ShipmentRepository {
	return &ShipmentRepository{db: db}
}

func (r *ShipmentRepository) Create(ctx context.Context, shipment *model.Shipment) error {
	if shipment.ID == uuid.Nil {
		shipment.ID = uuid.New()
	}
	return conn(ctx, r.db).Create(shipment).Error
}

func (r *ShipmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Shipment, error) {
	var shipment model.Shipment
	if err := conn(ctx, r.db).First(&shipment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &shipment, nil
}

func (r *ShipmentRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*model.Shipment, error) {
	var shipment model.Shipment
	if err := forUpdate(conn(ctx, r.db)).First(&shipment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &shipment, nil
}

// GetMany returns the shipments that exist among ids. Missing ids are
// silently skipped; callers compare lengths.
func (r *ShipmentRepository) GetMany(ctx context.Context, ids []uuid.UUID) ([]model.Shipment, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var shipments []model.Shipment
	err := conn(ctx, r.db).Where("id IN ?", ids).Order("id").Find(&shipments).Error
	return shipments, err
}

// GetManyForUpdate locks rows in id order so concurrent dispatches cannot deadlock.
func (r *ShipmentRepository) GetManyForUpdate(ctx context.Context, ids []uuid.UUID) ([]model.Shipment, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var shipments []model.Shipment
	err := forUpdate(conn(ctx, r.db)).Where("id IN ?", ids).Order("id").Find(&shipments).Error
	return shipments, err
}

func (r *ShipmentRepository) List(ctx context.Context) ([]model.Shipment, error) {
	var shipments []model.Shipment
	err := conn(ctx, r.db).Order("created_at DESC").Find(&shipments).Error
	return shipments, err
}

func (r *ShipmentRepository) ListByBox(ctx context.Context, boxID uuid.UUID) ([]model.Shipment, error) {
	var shipments []model.Shipment
	err := conn(ctx, r.db).Where("box_id = ?", boxID).Order("created_at DESC").Find(&shipments).Error
	return shipments, err
}

func (r *ShipmentRepository) Update(ctx context.Context, shipment *model.Shipment) error {
	return conn(ctx, r.db).Save(shipment).Error
}

func (r *ShipmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.db).Delete(&model.Shipment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
