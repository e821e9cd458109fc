package routes

import "fmt"

// Segment is the half-open interval [From, To) over route-local stop orders.
// A ticket for [1,2) and another for [2,3) share seat 10 without conflict.
type Segment struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// InvalidSegmentError reports a malformed or cross-route segment request.
type InvalidSegmentError struct {
	Reason string
}

func (e *InvalidSegmentError) Error() string {
	return fmt.Sprintf("invalid segment: %s", e.Reason)
}

// NewSegment validates that both stops belong to the same route and are
// ordered, and derives the segment interval from their sequence numbers.
func NewSegment(route *Route, fromStop, toStop *Stop) (Segment, error) {
	if !fromStop.BelongsTo(route.ID) || !toStop.BelongsTo(route.ID) {
		return Segment{}, &InvalidSegmentError{Reason: "stops belong to different routes"}
	}
	if fromStop.Order >= toStop.Order {
		return Segment{}, &InvalidSegmentError{
			Reason: fmt.Sprintf("boarding stop order %d must precede alighting stop order %d", fromStop.Order, toStop.Order),
		}
	}
	return Segment{From: fromStop.Order, To: toStop.Order}, nil
}

// ParseSegment validates raw order bounds without stop lookups. Used when
// the caller already resolved stops to their sequence numbers.
func ParseSegment(from, to int) (Segment, error) {
	if from >= to {
		return Segment{}, &InvalidSegmentError{
			Reason: fmt.Sprintf("boarding order %d must precede alighting order %d", from, to),
		}
	}
	return Segment{From: from, To: to}, nil
}

// Overlaps reports whether two half-open intervals intersect.
func (a Segment) Overlaps(b Segment) bool {
	return a.From < b.To && a.To > b.From
}

// Contains reports whether the segment covers the given stop order as a
// boarding point.
func (a Segment) Contains(order int) bool {
	return order >= a.From && order < a.To
}

func (a Segment) String() string {
	return fmt.Sprintf("[%d,%d)", a.From, a.To)
}
