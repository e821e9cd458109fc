package tickets

import "math"

// SellableLimit is the overbooking ceiling: bus capacity plus the
// configured percentage margin, rounded up. Capacity 40 at 5% gives 42.
func SellableLimit(capacity int, overbookingPct float64) int {
	return int(math.Ceil(float64(capacity) * (1 + overbookingPct)))
}

// OccupancyPercent is the display-only occupancy figure carried on
// overbooking rejections.
func OccupancyPercent(soldSeats, capacity int) float64 {
	if capacity <= 0 {
		return 0
	}
	return math.Round(float64(soldSeats)/float64(capacity)*100*100) / 100
}

// CheckCapacity admits or rejects one more sold seat against the ceiling.
// The decision uses integer seat counts only.
func CheckCapacity(tripID uint, soldSeats, capacity int, overbookingPct float64) error {
	limit := SellableLimit(capacity, overbookingPct)
	if soldSeats+1 > limit {
		return &OverbookingNotAllowedError{
			TripID:           tripID,
			SoldSeats:        soldSeats,
			Limit:            limit,
			OccupancyPercent: OccupancyPercent(soldSeats, capacity),
		}
	}
	return nil
}
