package tickets

import "fmt"

// OverbookingNotAllowedError reports a purchase rejected by the capacity
// ceiling. It carries the occupancy percentage for diagnostics; the
// admission decision itself is made on integer seat counts.
type OverbookingNotAllowedError struct {
	TripID           uint
	SoldSeats        int
	Limit            int
	OccupancyPercent float64
}

func (e *OverbookingNotAllowedError) Error() string {
	return fmt.Sprintf("trip %d is at its overbooking ceiling (%d/%d seats, %.2f%% occupancy)",
		e.TripID, e.SoldSeats, e.Limit, e.OccupancyPercent)
}
