package holds

import (
	"time"
)

// Status is the hold state machine. HOLD is the only live state; SOLD,
// EXPIRED and RELEASED are terminal.
type Status string

const (
	StatusHold     Status = "HOLD"
	StatusSold     Status = "SOLD"
	StatusExpired  Status = "EXPIRED"
	StatusReleased Status = "RELEASED"
)

func (s Status) IsTerminal() bool {
	return s == StatusSold || s == StatusExpired || s == StatusReleased
}

// SeatHold is a time-boxed claim on a seat for the whole trip. Holds are
// deliberately coarser than tickets: a hold blocks every segment of the
// seat until it expires, is released, or is consumed by a purchase.
type SeatHold struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	TripID     uint      `json:"trip_id" gorm:"not null;index"`
	SeatNumber int       `json:"seat_number" gorm:"not null"`
	UserID     uint      `json:"user_id" gorm:"not null;index"`
	Status     Status    `json:"status" gorm:"not null;default:'HOLD'"`
	ExpiresAt  time.Time `json:"expires_at" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// IsLive reports whether the hold still blocks the seat.
func (h *SeatHold) IsLive(now time.Time) bool {
	return h.Status == StatusHold && h.ExpiresAt.After(now)
}
