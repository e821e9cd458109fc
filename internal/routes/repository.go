package routes

import (
	"context"

	"gorm.io/gorm"
)

// Repository interface for route and stop operations
type Repository interface {
	Create(ctx context.Context, route *Route) error
	GetByID(ctx context.Context, id uint) (*Route, error)
	GetByIDWithStops(ctx context.Context, id uint) (*Route, error)
	GetAll(ctx context.Context, activeOnly bool) ([]Route, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) error
	Delete(ctx context.Context, id uint) error

	CreateStop(ctx context.Context, stop *Stop) error
	GetStopByID(ctx context.Context, id uint) (*Stop, error)
	GetStopsByRouteID(ctx context.Context, routeID uint) ([]Stop, error)
	DeleteStop(ctx context.Context, id uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, route *Route) error {
	return r.db.WithContext(ctx).Create(route).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Route, error) {
	var route Route
	err := r.db.WithContext(ctx).First(&route, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &route, nil
}

func (r *repository) GetByIDWithStops(ctx context.Context, id uint) (*Route, error) {
	var route Route
	err := r.db.WithContext(ctx).
		Preload("Stops", func(db *gorm.DB) *gorm.DB {
			return db.Order("stop_order ASC")
		}).
		First(&route, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &route, nil
}

func (r *repository) GetAll(ctx context.Context, activeOnly bool) ([]Route, error) {
	var routeList []Route
	query := r.db.WithContext(ctx).Model(&Route{})
	if activeOnly {
		query = query.Where("active = true")
	}
	err := query.Order("name ASC").Find(&routeList).Error
	return routeList, err
}

func (r *repository) Update(ctx context.Context, id uint, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&Route{}).Where("id = ?", id).Updates(updates).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Route{}, "id = ?", id).Error
}

func (r *repository) CreateStop(ctx context.Context, stop *Stop) error {
	return r.db.WithContext(ctx).Create(stop).Error
}

func (r *repository) GetStopByID(ctx context.Context, id uint) (*Stop, error) {
	var stop Stop
	err := r.db.WithContext(ctx).First(&stop, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &stop, nil
}

func (r *repository) GetStopsByRouteID(ctx context.Context, routeID uint) ([]Stop, error) {
	var stops []Stop
	err := r.db.WithContext(ctx).
		Where("route_id = ?", routeID).
		Order("stop_order ASC").
		Find(&stops).Error
	return stops, err
}

func (r *repository) DeleteStop(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Stop{}, "id = ?", id).Error
}
