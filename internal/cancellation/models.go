package cancellation

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cancellation is the audit record for one cancelled ticket. One row per
// ticket; the ticket itself flips to CANCELLED in the same transaction.
type Cancellation struct {
	ID               uint            `json:"id" gorm:"primaryKey"`
	TicketID         uint            `json:"ticket_id" gorm:"not null;uniqueIndex"`
	UserID           uint            `json:"user_id" gorm:"not null;index"`
	Reason           string          `json:"reason"`
	HoursBefore      float64         `json:"hours_before"`
	RefundPercentage int             `json:"refund_percentage" gorm:"not null"`
	RefundAmount     decimal.Decimal `json:"refund_amount" gorm:"type:numeric(14,2);not null"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}
