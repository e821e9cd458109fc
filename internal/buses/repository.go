package buses

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, bus *Bus) error
	GetByID(ctx context.Context, id uint) (*Bus, error)
	GetByPlate(ctx context.Context, plate string) (*Bus, error)
	GetAll(ctx context.Context, activeOnly bool) ([]Bus, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, bus *Bus) error {
	return r.db.WithContext(ctx).Create(bus).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Bus, error) {
	var bus Bus
	err := r.db.WithContext(ctx).First(&bus, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &bus, nil
}

func (r *repository) GetByPlate(ctx context.Context, plate string) (*Bus, error) {
	var bus Bus
	err := r.db.WithContext(ctx).First(&bus, "plate = ?", plate).Error
	if err != nil {
		return nil, err
	}
	return &bus, nil
}

func (r *repository) GetAll(ctx context.Context, activeOnly bool) ([]Bus, error) {
	var fleet []Bus
	query := r.db.WithContext(ctx).Model(&Bus{})
	if activeOnly {
		query = query.Where("active = true")
	}
	err := query.Order("plate ASC").Find(&fleet).Error
	return fleet, err
}

func (r *repository) Update(ctx context.Context, id uint, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&Bus{}).Where("id = ?", id).Updates(updates).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Bus{}, "id = ?", id).Error
}
