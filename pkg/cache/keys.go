package cache

import "fmt"

// Cache key builders for reservation reads. Keys are namespaced so an
// invalidation after a purchase or cancellation can target a single trip.

// SeatMapKey caches the per-seat occupancy view for a trip.
func SeatMapKey(tripID uint) string {
	return fmt.Sprintf("movibus:seatmap:%d", tripID)
}

// OccupancyKey caches the occupancy summary for a trip.
func OccupancyKey(tripID uint) string {
	return fmt.Sprintf("movibus:occupancy:%d", tripID)
}

// TripPattern matches every cached read for a trip.
func TripPattern(tripID uint) string {
	return fmt.Sprintf("movibus:*:%d", tripID)
}
