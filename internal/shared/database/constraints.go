package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds database constraints for concurrency control
func MigrateConstraints(db *gorm.DB) error {
	// One live hold per seat per trip. The partial index backs up the
	// row-lock path so a race can never leave two HOLD rows behind.
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS unique_live_hold_per_seat
		ON seat_holds (trip_id, seat_number)
		WHERE status = 'HOLD';
	`).Error
	if err != nil {
		return err
	}

	// Segment availability scans filter on trip and status first.
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_tickets_trip_status
		ON tickets (trip_id, status);
	`).Error
	if err != nil {
		return err
	}

	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_tickets_trip_seat
		ON tickets (trip_id, seat_number);
	`).Error
	if err != nil {
		return err
	}

	// Hold sweeps scan by status and expiry.
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_seat_holds_status_expires
		ON seat_holds (status, expires_at);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
