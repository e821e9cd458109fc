package tickets

import (
	"movibus/internal/routes"
)

// Availability predicates. Pure; callers feed them rows already read
// under the purchase transaction's lock.

// IsSegmentFree reports whether a candidate segment can be sold on a seat
// given the seat's sold segments and whether a live hold blocks it. Holds
// are segment-agnostic: any live hold blocks every segment.
func IsSegmentFree(soldSegments []routes.Segment, heldByOther bool, candidate routes.Segment) bool {
	if heldByOther {
		return false
	}
	for _, sold := range soldSegments {
		if sold.Overlaps(candidate) {
			return false
		}
	}
	return true
}

// IsSeatFreeForWholeTrip is the stricter predicate hold creation needs:
// a hold claims every segment, so any sold ticket on the seat blocks it.
func IsSeatFreeForWholeTrip(soldSegments []routes.Segment) bool {
	return len(soldSegments) == 0
}
