package database

import (
	"movibus/internal/buses"
	"movibus/internal/cancellation"
	"movibus/internal/holds"
	"movibus/internal/pricing"
	"movibus/internal/routes"
	"movibus/internal/tickets"
	"movibus/internal/trips"
	"movibus/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&routes.Route{},
		&routes.Stop{},
		&buses.Bus{},
		&trips.Trip{},
		&tickets.Ticket{},
		&holds.SeatHold{},
		&cancellation.Cancellation{},
		&pricing.FareRule{},
	)
}
