package routes

import (
	"errors"
	"testing"
)

func TestNewSegment(t *testing.T) {
	route := &Route{ID: 1}
	bogota := &Stop{ID: 10, RouteID: 1, Name: "Bogotá", Order: 1}
	medellin := &Stop{ID: 11, RouteID: 1, Name: "Medellín", Order: 2}
	cali := &Stop{ID: 12, RouteID: 1, Name: "Cali", Order: 3}
	foreign := &Stop{ID: 20, RouteID: 2, Name: "Cartagena", Order: 1}

	t.Run("valid segment", func(t *testing.T) {
		seg, err := NewSegment(route, bogota, cali)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if seg.From != 1 || seg.To != 3 {
			t.Fatalf("expected [1,3), got %s", seg)
		}
	})

	t.Run("reversed stops rejected", func(t *testing.T) {
		_, err := NewSegment(route, medellin, bogota)
		var invalid *InvalidSegmentError
		if !errors.As(err, &invalid) {
			t.Fatalf("expected InvalidSegmentError, got %v", err)
		}
	})

	t.Run("same stop rejected", func(t *testing.T) {
		_, err := NewSegment(route, medellin, medellin)
		var invalid *InvalidSegmentError
		if !errors.As(err, &invalid) {
			t.Fatalf("expected InvalidSegmentError, got %v", err)
		}
	})

	t.Run("cross-route stops rejected", func(t *testing.T) {
		_, err := NewSegment(route, bogota, foreign)
		var invalid *InvalidSegmentError
		if !errors.As(err, &invalid) {
			t.Fatalf("expected InvalidSegmentError, got %v", err)
		}
	})
}

func TestSegmentOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a    Segment
		b    Segment
		want bool
	}{
		{"identical", Segment{1, 3}, Segment{1, 3}, true},
		{"contained", Segment{1, 4}, Segment{2, 3}, true},
		{"partial overlap", Segment{1, 3}, Segment{2, 4}, true},
		{"adjacent intervals do not overlap", Segment{1, 2}, Segment{2, 3}, false},
		{"disjoint", Segment{1, 2}, Segment{3, 4}, false},
		{"reversed adjacency", Segment{2, 3}, Segment{1, 2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("%s.Overlaps(%s) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			// Overlap is symmetric.
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("%s.Overlaps(%s) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestParseSegment(t *testing.T) {
	if _, err := ParseSegment(2, 2); err == nil {
		t.Fatal("expected error for empty interval")
	}
	seg, err := ParseSegment(1, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !seg.Contains(1) || !seg.Contains(4) || seg.Contains(5) {
		t.Fatalf("half-open containment broken for %s", seg)
	}
}
