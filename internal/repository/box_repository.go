package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/fleet-logistics/internal/model"
)

type BoxRepository struct {
	db *gorm.DB
}

func NewBoxRepository(db *gorm.DB) *BoxRepository {
	return &BoxRepository{db: db}
}

func (r *BoxRepository) Create(ctx context.Context, box *model.Box) error {
	if box.ID == uuid.Nil {
		box.ID = uuid.New()
	}
	return conn(ctx, r.db).Create(box).Error
}

func (r *BoxRepository) Get(ctx context.Context, id uuid.UUID) (*model.Box, error) {
	var box model.Box
	if err := conn(ctx, r.db).First(&box, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &box, nil
}

func (r *BoxRepository) List(ctx context.Context) ([]model.Box, error) {
	var boxes []model.Box
	err := conn(ctx, r.db).Order("created_at").Find(&boxes).Error
	return boxes, err
}

func (r *BoxRepository) Update(ctx context.Context, box *model.Box) error {
	return conn(ctx, r.db).Save(box).Error
}
