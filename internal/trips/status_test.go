package trips

import "testing"

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusScheduled, StatusBoarding, true},
		{StatusScheduled, StatusCancelled, true},
		{StatusScheduled, StatusDeparted, false},
		{StatusScheduled, StatusArrived, false},
		{StatusBoarding, StatusDeparted, true},
		{StatusBoarding, StatusCancelled, true},
		{StatusBoarding, StatusScheduled, false},
		{StatusDeparted, StatusArrived, true},
		{StatusDeparted, StatusCancelled, false},
		{StatusArrived, StatusCancelled, false},
		{StatusCancelled, StatusScheduled, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.allowed {
			t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.allowed)
		}
	}
}

func TestStatusBookable(t *testing.T) {
	bookable := []Status{StatusScheduled, StatusBoarding}
	for _, s := range bookable {
		if !s.IsBookable() {
			t.Errorf("expected %s to be bookable", s)
		}
	}

	notBookable := []Status{StatusDeparted, StatusArrived, StatusCancelled}
	for _, s := range notBookable {
		if s.IsBookable() {
			t.Errorf("expected %s to not be bookable", s)
		}
	}
}
