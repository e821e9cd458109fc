package pricing

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	CreateFareRule(ctx context.Context, rule *FareRule) error
	GetFareRule(ctx context.Context, routeID uint, fromOrder, toOrder int) (*FareRule, error)
	GetFareRulesByRoute(ctx context.Context, routeID uint) ([]FareRule, error)
	UpdateFareRule(ctx context.Context, id uint, updates map[string]interface{}) error
	DeleteFareRule(ctx context.Context, id uint) error

	// CountRecentSales is the demand signal: SOLD tickets on a route's
	// trips created inside the demand window.
	CountRecentSales(ctx context.Context, routeID uint, since time.Time) (int, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateFareRule(ctx context.Context, rule *FareRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *repository) GetFareRule(ctx context.Context, routeID uint, fromOrder, toOrder int) (*FareRule, error) {
	var rule FareRule
	err := r.db.WithContext(ctx).
		Where("route_id = ? AND from_order = ? AND to_order = ?", routeID, fromOrder, toOrder).
		First(&rule).Error
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *repository) GetFareRulesByRoute(ctx context.Context, routeID uint) ([]FareRule, error) {
	var rules []FareRule
	err := r.db.WithContext(ctx).
		Where("route_id = ?", routeID).
		Order("from_order ASC, to_order ASC").
		Find(&rules).Error
	return rules, err
}

func (r *repository) UpdateFareRule(ctx context.Context, id uint, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&FareRule{}).Where("id = ?", id).Updates(updates).Error
}

func (r *repository) DeleteFareRule(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&FareRule{}, "id = ?", id).Error
}

func (r *repository) CountRecentSales(ctx context.Context, routeID uint, since time.Time) (int, error) {
	var count int
	err := r.db.WithContext(ctx).
		Table("tickets").
		Joins("JOIN trips ON trips.id = tickets.trip_id").
		Where("trips.route_id = ? AND tickets.status = 'SOLD' AND tickets.created_at >= ?", routeID, since).
		Select("COUNT(*)").
		Scan(&count).Error
	return count, err
}
