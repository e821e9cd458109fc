package trips

import (
	"time"

	"movibus/internal/buses"
	"movibus/internal/routes"
)

// Trip is one scheduled run of a bus along a route.
type Trip struct {
	ID            uint         `json:"id" gorm:"primaryKey"`
	RouteID       uint         `json:"route_id" gorm:"not null;index"`
	BusID         uint         `json:"bus_id" gorm:"not null;index"`
	DepartureTime time.Time    `json:"departure_time" gorm:"not null;index"`
	Status        Status       `json:"status" gorm:"not null;default:'SCHEDULED'"`
	Route         routes.Route `json:"route,omitempty" gorm:"foreignKey:RouteID"`
	Bus           buses.Bus    `json:"bus,omitempty" gorm:"foreignKey:BusID"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// SeatView is one seat's occupancy picture inside a trip seat map: the
// sold segments plus whether a live hold blocks the whole trip.
type SeatView struct {
	SeatNumber   int              `json:"seat_number"`
	SoldSegments []routes.Segment `json:"sold_segments"`
	Held         bool             `json:"held"`
}

// SeatMap is the per-trip occupancy view served to clients. It is a read
// model only; purchase admission always re-checks inside the transaction.
type SeatMap struct {
	TripID      uint       `json:"trip_id"`
	Capacity    int        `json:"capacity"`
	Seats       []SeatView `json:"seats"`
	GeneratedAt time.Time  `json:"generated_at"`
}

// Occupancy summarizes how full a trip is against its overbooking ceiling.
type Occupancy struct {
	TripID           uint    `json:"trip_id"`
	Capacity         int     `json:"capacity"`
	SoldSeats        int     `json:"sold_seats"`
	Limit            int     `json:"limit"`
	OccupancyPercent float64 `json:"occupancy_percent"`
}
