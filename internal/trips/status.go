package trips

type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusBoarding  Status = "BOARDING"
	StatusDeparted  Status = "DEPARTED"
	StatusArrived   Status = "ARRIVED"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusScheduled, StatusBoarding, StatusDeparted, StatusArrived, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsBookable reports whether tickets and holds may still be taken.
func (s Status) IsBookable() bool {
	return s == StatusScheduled || s == StatusBoarding
}

// IsTerminal reports whether the trip has reached a final state.
func (s Status) IsTerminal() bool {
	return s == StatusArrived || s == StatusCancelled
}

// CanTransitionTo enforces the trip lifecycle: SCHEDULED → BOARDING →
// DEPARTED → ARRIVED, with CANCELLED reachable from any pre-departure state.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusScheduled:
		return next == StatusBoarding || next == StatusCancelled
	case StatusBoarding:
		return next == StatusDeparted || next == StatusCancelled
	case StatusDeparted:
		return next == StatusArrived
	default:
		return false
	}
}
