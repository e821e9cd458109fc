package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

// FareRule overrides the configured base price for a specific
// (route, boarding order, alighting order) segment.
type FareRule struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	RouteID   uint            `json:"route_id" gorm:"not null;index;uniqueIndex:unique_fare_rule,priority:1"`
	FromOrder int             `json:"from_order" gorm:"not null;uniqueIndex:unique_fare_rule,priority:2"`
	ToOrder   int             `json:"to_order" gorm:"not null;uniqueIndex:unique_fare_rule,priority:3"`
	BasePrice decimal.Decimal `json:"base_price" gorm:"type:numeric(14,2);not null"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// DemandLevel buckets current sales volume for multiplier selection.
type DemandLevel string

const (
	DemandHigh   DemandLevel = "HIGH"
	DemandMedium DemandLevel = "MEDIUM"
	DemandNone   DemandLevel = "NONE"
)

// Quote is the fully broken-down price for one prospective ticket.
type Quote struct {
	BasePrice        decimal.Decimal `json:"base_price"`
	DemandLevel      DemandLevel     `json:"demand_level"`
	DemandMultiplier float64         `json:"demand_multiplier"`
	PeakHour         bool            `json:"peak_hour"`
	PeakMultiplier   float64         `json:"peak_multiplier"`
	DiscountPercent  int             `json:"discount_percent"`
	FinalPrice       decimal.Decimal `json:"final_price"`
}
