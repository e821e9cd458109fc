package tickets

import (
	"movibus/internal/pricing"
)

type PurchaseTicketRequest struct {
	TripID     uint   `json:"trip_id" validate:"required"`
	SeatNumber int    `json:"seat_number" validate:"required,min=1"`
	FromStopID uint   `json:"from_stop_id" validate:"required"`
	ToStopID   uint   `json:"to_stop_id" validate:"required"`
	Category   string `json:"category" validate:"omitempty,oneof=GENERAL STUDENT SENIOR CHILD"`
}

type HoldSeatRequest struct {
	TripID     uint `json:"trip_id" validate:"required"`
	SeatNumber int  `json:"seat_number" validate:"required,min=1"`
}

// PurchaseResult pairs the persisted ticket with the quote breakdown so
// the buyer sees how the price was composed.
type PurchaseResult struct {
	Ticket *Ticket        `json:"ticket"`
	Quote  *pricing.Quote `json:"quote"`
}
