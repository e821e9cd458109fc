package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"movibus/internal/shared/config"
)

func reservationConfig() config.ReservationConfig {
	return config.ReservationConfig{
		HighDemandMultiplier:   1.25,
		MediumDemandMultiplier: 1.10,
		HighDemandThreshold:    30,
		MediumDemandThreshold:  15,
	}
}

func TestSelectDemandLevel(t *testing.T) {
	cfg := reservationConfig()

	tests := []struct {
		sales     int
		wantLevel DemandLevel
		wantMult  float64
	}{
		{0, DemandNone, 1.0},
		{14, DemandNone, 1.0},
		{15, DemandMedium, 1.10},
		{29, DemandMedium, 1.10},
		{30, DemandHigh, 1.25},
		{100, DemandHigh, 1.25},
	}

	for _, tt := range tests {
		level, mult := SelectDemandLevel(tt.sales, cfg)
		if level != tt.wantLevel || mult != tt.wantMult {
			t.Errorf("SelectDemandLevel(%d) = (%s, %v), want (%s, %v)",
				tt.sales, level, mult, tt.wantLevel, tt.wantMult)
		}
	}
}

func TestComputeStudentDiscount(t *testing.T) {
	base := decimal.NewFromInt(100000)

	got := Compute(base, 1.0, 1.0, 25)
	want := decimal.RequireFromString("75000.00")
	if !got.Equal(want) {
		t.Errorf("Compute = %s, want %s", got, want)
	}
}

func TestComputeMultiplierOrder(t *testing.T) {
	base := decimal.NewFromInt(100000)

	// base * 1.25 demand * 1.10 peak = 137500; 25% discount => 103125.00
	got := Compute(base, 1.25, 1.10, 25)
	want := decimal.RequireFromString("103125.00")
	if !got.Equal(want) {
		t.Errorf("Compute = %s, want %s", got, want)
	}
}

func TestComputeRoundsHalfUp(t *testing.T) {
	// 100.005 rounds up to 100.01.
	base := decimal.RequireFromString("100.005")
	got := Compute(base, 1.0, 1.0, 0)
	want := decimal.RequireFromString("100.01")
	if !got.Equal(want) {
		t.Errorf("Compute = %s, want %s", got, want)
	}
}

func TestComputeDeterministic(t *testing.T) {
	base := decimal.RequireFromString("123456.78")
	first := Compute(base, 1.25, 1.10, 20)
	for i := 0; i < 10; i++ {
		if got := Compute(base, 1.25, 1.10, 20); !got.Equal(first) {
			t.Fatalf("non-deterministic result: %s != %s", got, first)
		}
	}
}

func TestComputeUnknownCategoryNoDiscount(t *testing.T) {
	base := decimal.NewFromInt(50000)
	got := Compute(base, 1.0, 1.0, 0)
	if !got.Equal(decimal.RequireFromString("50000.00")) {
		t.Errorf("expected no discount, got %s", got)
	}
}

func TestRefundAmount(t *testing.T) {
	price := decimal.NewFromInt(100000)

	tests := []struct {
		percent int
		want    string
	}{
		{90, "90000.00"},
		{70, "70000.00"},
		{50, "50000.00"},
		{30, "30000.00"},
		{0, "0.00"},
	}

	for _, tt := range tests {
		got := RefundAmount(price, tt.percent)
		if !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Errorf("RefundAmount(%d%%) = %s, want %s", tt.percent, got, tt.want)
		}
	}
}
