package pricing

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

type fakeFareRepo struct {
	updates map[string]interface{}
}

func (f *fakeFareRepo) CreateFareRule(ctx context.Context, rule *FareRule) error { panic("not used") }
func (f *fakeFareRepo) GetFareRule(ctx context.Context, routeID uint, fromOrder, toOrder int) (*FareRule, error) {
	panic("not used")
}
func (f *fakeFareRepo) GetFareRulesByRoute(ctx context.Context, routeID uint) ([]FareRule, error) {
	panic("not used")
}
func (f *fakeFareRepo) UpdateFareRule(ctx context.Context, id uint, updates map[string]interface{}) error {
	f.updates = updates
	return nil
}
func (f *fakeFareRepo) DeleteFareRule(ctx context.Context, id uint) error { panic("not used") }
func (f *fakeFareRepo) CountRecentSales(ctx context.Context, routeID uint, since time.Time) (int, error) {
	panic("not used")
}

func TestUpdateFareRuleReprices(t *testing.T) {
	repo := &fakeFareRepo{}
	svc := &service{repo: repo}

	if err := svc.UpdateFareRule(context.Background(), 4, UpdateFareRuleRequest{BasePrice: "120000.00"}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	got, ok := repo.updates["base_price"].(decimal.Decimal)
	if !ok || got.StringFixed(2) != "120000.00" {
		t.Errorf("base_price update = %v, want 120000.00", repo.updates["base_price"])
	}
}

func TestUpdateFareRuleRejectsBadPrice(t *testing.T) {
	svc := &service{repo: &fakeFareRepo{}}

	if err := svc.UpdateFareRule(context.Background(), 4, UpdateFareRuleRequest{BasePrice: "not-a-price"}); err == nil {
		t.Error("malformed price should be rejected")
	}
	if err := svc.UpdateFareRule(context.Background(), 4, UpdateFareRuleRequest{BasePrice: "-100"}); err == nil {
		t.Error("negative price should be rejected")
	}
}
