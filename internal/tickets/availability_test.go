package tickets

import (
	"testing"

	"movibus/internal/routes"
)

func TestIsSegmentFree(t *testing.T) {
	bogotaMedellin := routes.Segment{From: 1, To: 2}
	medellinCali := routes.Segment{From: 2, To: 3}
	fullLine := routes.Segment{From: 1, To: 3}

	tests := []struct {
		name        string
		sold        []routes.Segment
		heldByOther bool
		candidate   routes.Segment
		want        bool
	}{
		{
			name:      "empty seat accepts any segment",
			sold:      nil,
			candidate: fullLine,
			want:      true,
		},
		{
			name:      "disjoint segments share a seat",
			sold:      []routes.Segment{bogotaMedellin},
			candidate: medellinCali,
			want:      true,
		},
		{
			name:      "full line blocks the first leg",
			sold:      []routes.Segment{fullLine},
			candidate: bogotaMedellin,
			want:      false,
		},
		{
			name:      "first leg blocks the full line",
			sold:      []routes.Segment{bogotaMedellin},
			candidate: fullLine,
			want:      false,
		},
		{
			name:      "both legs sold blocks the full line",
			sold:      []routes.Segment{bogotaMedellin, medellinCali},
			candidate: fullLine,
			want:      false,
		},
		{
			name:        "hold by another passenger blocks a disjoint segment",
			sold:        []routes.Segment{bogotaMedellin},
			heldByOther: true,
			candidate:   medellinCali,
			want:        false,
		},
		{
			name:        "hold by another passenger blocks an empty seat",
			sold:        nil,
			heldByOther: true,
			candidate:   bogotaMedellin,
			want:        false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsSegmentFree(tt.sold, tt.heldByOther, tt.candidate)
			if got != tt.want {
				t.Errorf("IsSegmentFree(%v, held=%v, %v) = %v, want %v",
					tt.sold, tt.heldByOther, tt.candidate, got, tt.want)
			}
		})
	}
}

func TestIsSeatFreeForWholeTrip(t *testing.T) {
	if !IsSeatFreeForWholeTrip(nil) {
		t.Error("seat with no sold segments should be free for the whole trip")
	}
	if IsSeatFreeForWholeTrip([]routes.Segment{{From: 2, To: 3}}) {
		t.Error("any sold segment should block a whole-trip claim")
	}
}
