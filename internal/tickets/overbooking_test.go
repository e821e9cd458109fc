package tickets

import (
	"errors"
	"testing"
)

func TestSellableLimit(t *testing.T) {
	tests := []struct {
		capacity int
		pct      float64
		want     int
	}{
		{40, 0.05, 42},
		{40, 0, 40},
		{50, 0.05, 53},
		{10, 0.10, 11},
		{1, 0.05, 2},
	}

	for _, tt := range tests {
		got := SellableLimit(tt.capacity, tt.pct)
		if got != tt.want {
			t.Errorf("SellableLimit(%d, %v) = %d, want %d", tt.capacity, tt.pct, got, tt.want)
		}
	}
}

func TestCheckCapacity(t *testing.T) {
	// Capacity 40 at 5% sells up to 42 seats.
	if err := CheckCapacity(1, 41, 40, 0.05); err != nil {
		t.Fatalf("42nd seat should be admitted, got %v", err)
	}

	err := CheckCapacity(1, 42, 40, 0.05)
	if err == nil {
		t.Fatal("43rd seat should be rejected")
	}

	var overbooked *OverbookingNotAllowedError
	if !errors.As(err, &overbooked) {
		t.Fatalf("expected OverbookingNotAllowedError, got %T", err)
	}
	if overbooked.Limit != 42 {
		t.Errorf("limit = %d, want 42", overbooked.Limit)
	}
	if overbooked.SoldSeats != 42 {
		t.Errorf("sold seats = %d, want 42", overbooked.SoldSeats)
	}
	if overbooked.OccupancyPercent != 105.0 {
		t.Errorf("occupancy = %v, want 105.0", overbooked.OccupancyPercent)
	}
}

func TestCheckCapacityZeroMargin(t *testing.T) {
	if err := CheckCapacity(1, 39, 40, 0); err != nil {
		t.Fatalf("last regular seat should be admitted, got %v", err)
	}
	if err := CheckCapacity(1, 40, 40, 0); err == nil {
		t.Fatal("seat beyond capacity should be rejected with no margin")
	}
}
