package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/fleet-logistics/internal/model"
)

type DriverRepository struct {
	db *gorm.DB
}

func NewDriverRepository(db *gorm.DB) *DriverRepository {
	return &DriverRepository{db: db}
}

func (r *DriverRepository) Create(ctx context.Context, driver *model.Driver) error {
	if driver.ID == uuid.Nil {
		driver.ID = uuid.New()
	}
	return conn(ctx, r.db).Create(driver).Error
}

func (r *DriverRepository) Get(ctx context.Context, id uuid.UUID) (*model.Driver, error) {
	var driver model.Driver
	if err := conn(ctx, r.db).First(&driver, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &driver, nil
}

func (r *DriverRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*model.Driver, error) {
	var driver model.Driver
	if err := forUpdate(conn(ctx, r.db)).First(&driver, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &driver, nil
}

func (r *DriverRepository) List(ctx context.Context) ([]model.Driver, error) {
	var drivers []model.Driver
	err := conn(ctx, r.db).Order("name").Find(&drivers).Error
	return drivers, err
}

func (r *DriverRepository) Update(ctx context.Context, driver *model.Driver) error {
	return conn(ctx, r.db).Save(driver).Error
}

func (r *DriverRepository) FindByCPF(ctx context.Context, cpf string) (*model.Driver, error) {
	var driver model.Driver
	if err := conn(ctx, r.db).First(&driver, "cpf = ?", cpf).Error; err != nil {
		return nil, err
	}
	return &driver, nil
}

func (r *DriverRepository) FindByCNH(ctx context.Context, cnh string) (*model.Driver, error) {
	var driver model.Driver
	if err := conn(ctx, r.db).First(&driver, "cnh = ?", cnh).Error; err != nil {
		return nil, err
	}
	return &driver, nil
}

func (r *DriverRepository) CountAvailable(ctx context.Context) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&model.Driver{}).
		Where("active = ? AND available = ?", true, true).
		Count(&count).Error
	return count, err
}
