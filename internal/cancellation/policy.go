package cancellation

import (
	"time"

	"github.com/shopspring/decimal"

	"movibus/internal/pricing"
	"movibus/internal/shared/config"
)

// RefundDecision is the outcome of applying the time-tier policy to one
// ticket price at one cancellation instant.
type RefundDecision struct {
	HoursBefore      float64         `json:"hours_before"`
	RefundPercentage int             `json:"refund_percentage"`
	RefundAmount     decimal.Decimal `json:"refund_amount"`
}

// SelectRefundPercent picks the refund tier from the hours remaining
// before departure. Tier boundaries are inclusive on the high side:
// exactly 48h earns the 48h tier.
func SelectRefundPercent(hoursBefore float64, cfg config.RefundConfig) int {
	switch {
	case hoursBefore >= 48:
		return cfg.Before48h
	case hoursBefore >= 24:
		return cfg.Before24h
	case hoursBefore >= 12:
		return cfg.Before12h
	case hoursBefore >= 6:
		return cfg.Before6h
	default:
		return cfg.LessThan6h
	}
}

// Decide computes the refund for a ticket price given the departure and
// cancellation instants. A cancellation after departure refunds nothing;
// callers reject that case before getting here, this is a backstop.
func Decide(price decimal.Decimal, departure, cancelledAt time.Time, cfg config.RefundConfig) RefundDecision {
	hoursBefore := departure.Sub(cancelledAt).Hours()
	if hoursBefore < 0 {
		hoursBefore = 0
	}

	percent := SelectRefundPercent(hoursBefore, cfg)
	return RefundDecision{
		HoursBefore:      hoursBefore,
		RefundPercentage: percent,
		RefundAmount:     pricing.RefundAmount(price, percent),
	}
}
