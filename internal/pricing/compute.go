package pricing

import (
	"github.com/shopspring/decimal"

	"movibus/internal/shared/config"
)

// SelectDemandLevel picks the highest bucket reached by recent sales.
// Buckets are mutually exclusive; exactly one multiplier ever applies.
func SelectDemandLevel(recentSales int, cfg config.ReservationConfig) (DemandLevel, float64) {
	switch {
	case recentSales >= cfg.HighDemandThreshold:
		return DemandHigh, cfg.HighDemandMultiplier
	case recentSales >= cfg.MediumDemandThreshold:
		return DemandMedium, cfg.MediumDemandMultiplier
	default:
		return DemandNone, 1.0
	}
}

// Compute applies the pricing pipeline in its fixed order: base, demand
// multiplier, peak multiplier, category discount, then a single half-up
// round to 2 decimals. Rounding only once at the end keeps the result
// reproducible for identical inputs.
func Compute(base decimal.Decimal, demandMultiplier, peakMultiplier float64, discountPercent int) decimal.Decimal {
	price := base.
		Mul(decimal.NewFromFloat(demandMultiplier)).
		Mul(decimal.NewFromFloat(peakMultiplier))

	if discountPercent > 0 {
		discount := price.Mul(decimal.NewFromInt(int64(discountPercent))).Div(decimal.NewFromInt(100))
		price = price.Sub(discount)
	}

	return price.Round(2)
}

// RefundAmount applies a refund percentage to a ticket price, rounded
// half-up to 2 decimals.
func RefundAmount(price decimal.Decimal, refundPercent int) decimal.Decimal {
	return price.
		Mul(decimal.NewFromInt(int64(refundPercent))).
		Div(decimal.NewFromInt(100)).
		Round(2)
}
