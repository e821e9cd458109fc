package pricing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"movibus/internal/routes"
	"movibus/internal/shared/config"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Service interface {
	// QuotePrice computes the final ticket price for a prospective
	// purchase. Pure given its stored inputs: same fare rules, demand
	// count and config always produce the same rounded price.
	QuotePrice(ctx context.Context, routeID uint, segment routes.Segment, category string, departure time.Time) (*Quote, error)

	CreateFareRule(ctx context.Context, req FareRuleRequest) (*FareRule, error)
	GetFareRules(ctx context.Context, routeID uint) ([]FareRule, error)
	UpdateFareRule(ctx context.Context, id uint, req UpdateFareRuleRequest) error
	DeleteFareRule(ctx context.Context, id uint) error
}

type FareRuleRequest struct {
	RouteID   uint   `json:"route_id" binding:"required"`
	FromOrder int    `json:"from_order" binding:"required,min=1"`
	ToOrder   int    `json:"to_order" binding:"required,min=2"`
	BasePrice string `json:"base_price" binding:"required"`
}

// UpdateFareRuleRequest reprices an existing rule; the segment key is
// immutable.
type UpdateFareRuleRequest struct {
	BasePrice string `json:"base_price" binding:"required"`
}

type service struct {
	repo Repository
	cfg  config.ReservationConfig
}

func NewService(repo Repository, cfg *config.Config) Service {
	return &service{
		repo: repo,
		cfg:  cfg.Reservation,
	}
}

func (s *service) QuotePrice(ctx context.Context, routeID uint, segment routes.Segment, category string, departure time.Time) (*Quote, error) {
	base, err := s.basePrice(ctx, routeID, segment)
	if err != nil {
		return nil, err
	}

	recentSales, err := s.repo.CountRecentSales(ctx, routeID, time.Now().Add(-s.cfg.DemandWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to read demand signal: %w", err)
	}

	demandLevel, demandMultiplier := SelectDemandLevel(recentSales, s.cfg)

	peakMultiplier := 1.0
	peakHour := s.cfg.IsPeakHour(departure)
	if peakHour {
		peakMultiplier = s.cfg.PeakHoursMultiplier
	}

	discountPercent := s.cfg.DiscountPercent(category)

	return &Quote{
		BasePrice:        base,
		DemandLevel:      demandLevel,
		DemandMultiplier: demandMultiplier,
		PeakHour:         peakHour,
		PeakMultiplier:   peakMultiplier,
		DiscountPercent:  discountPercent,
		FinalPrice:       Compute(base, demandMultiplier, peakMultiplier, discountPercent),
	}, nil
}

func (s *service) basePrice(ctx context.Context, routeID uint, segment routes.Segment) (decimal.Decimal, error) {
	rule, err := s.repo.GetFareRule(ctx, routeID, segment.From, segment.To)
	if err == nil {
		return rule.BasePrice, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, fmt.Errorf("failed to look up fare rule: %w", err)
	}

	base, err := decimal.NewFromString(s.cfg.TicketBasePrice)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid configured base price %q: %w", s.cfg.TicketBasePrice, err)
	}
	return base, nil
}

func (s *service) CreateFareRule(ctx context.Context, req FareRuleRequest) (*FareRule, error) {
	if req.FromOrder >= req.ToOrder {
		return nil, errors.New("from_order must precede to_order")
	}

	base, err := decimal.NewFromString(req.BasePrice)
	if err != nil {
		return nil, fmt.Errorf("invalid base price: %w", err)
	}
	if base.IsNegative() {
		return nil, errors.New("base price must not be negative")
	}

	if _, err := s.repo.GetFareRule(ctx, req.RouteID, req.FromOrder, req.ToOrder); err == nil {
		return nil, errors.New("fare rule already exists for this segment")
	}

	rule := &FareRule{
		RouteID:   req.RouteID,
		FromOrder: req.FromOrder,
		ToOrder:   req.ToOrder,
		BasePrice: base,
	}
	if err := s.repo.CreateFareRule(ctx, rule); err != nil {
		return nil, fmt.Errorf("failed to create fare rule: %w", err)
	}
	return rule, nil
}

func (s *service) UpdateFareRule(ctx context.Context, id uint, req UpdateFareRuleRequest) error {
	base, err := decimal.NewFromString(req.BasePrice)
	if err != nil {
		return fmt.Errorf("invalid base price: %w", err)
	}
	if base.IsNegative() {
		return errors.New("base price must not be negative")
	}

	return s.repo.UpdateFareRule(ctx, id, map[string]interface{}{
		"base_price": base,
		"updated_at": time.Now(),
	})
}

func (s *service) GetFareRules(ctx context.Context, routeID uint) ([]FareRule, error) {
	rules, err := s.repo.GetFareRulesByRoute(ctx, routeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get fare rules: %w", err)
	}
	return rules, nil
}

func (s *service) DeleteFareRule(ctx context.Context, id uint) error {
	return s.repo.DeleteFareRule(ctx, id)
}
