package holds

import "fmt"

// SeatNotAvailableError reports a seat blocked by an existing sold ticket
// or a live hold. The ticket purchase path reuses it for overlap conflicts.
type SeatNotAvailableError struct {
	TripID     uint
	SeatNumber int
	Reason     string
}

func (e *SeatNotAvailableError) Error() string {
	return fmt.Sprintf("seat %d on trip %d is not available: %s", e.SeatNumber, e.TripID, e.Reason)
}

// TripNotBookableError reports a trip whose status forbids new holds or
// purchases.
type TripNotBookableError struct {
	TripID uint
	Status string
}

func (e *TripNotBookableError) Error() string {
	return fmt.Sprintf("trip %d is not bookable in status %s", e.TripID, e.Status)
}
