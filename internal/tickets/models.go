package tickets

import (
	"time"

	"github.com/shopspring/decimal"

	"movibus/internal/routes"
)

type Status string

const (
	StatusSold      Status = "SOLD"
	StatusCancelled Status = "CANCELLED"
	StatusNoShow    Status = "NO_SHOW"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusSold, StatusCancelled, StatusNoShow:
		return true
	default:
		return false
	}
}

// Ticket is one sold seat segment. Immutable once SOLD apart from status
// transitions; a cancelled row stays behind for audit and stops blocking
// availability.
type Ticket struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Reference   string          `json:"reference" gorm:"uniqueIndex;not null"`
	TripID      uint            `json:"trip_id" gorm:"not null;index"`
	UserID      uint            `json:"user_id" gorm:"not null;index"`
	SeatNumber  int             `json:"seat_number" gorm:"not null"`
	FromStopID  uint            `json:"from_stop_id" gorm:"not null"`
	ToStopID    uint            `json:"to_stop_id" gorm:"not null"`
	SegmentFrom int             `json:"segment_from" gorm:"not null"`
	SegmentTo   int             `json:"segment_to" gorm:"not null"`
	Category    string          `json:"category" gorm:"not null;default:'GENERAL'"`
	Price       decimal.Decimal `json:"price" gorm:"type:numeric(14,2);not null"`
	Status      Status          `json:"status" gorm:"not null;default:'SOLD'"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Segment reconstructs the ticket's interval value.
func (t *Ticket) Segment() routes.Segment {
	return routes.Segment{From: t.SegmentFrom, To: t.SegmentTo}
}
