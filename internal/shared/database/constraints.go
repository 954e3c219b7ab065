package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds critical database constraints for concurrency control
func MigrateConstraints(db *gorm.DB) error {
	// One live hold per customer per appointment type. Enforced in the
	// reserve transaction too; this backstops it at the store level.
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS unique_active_hold_per_customer_type
		ON slot_reservations (customer_id, appointment_type_id);
	`).Error
	if err != nil {
		return err
	}

	// Index for exact-window capacity counts on holds
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_slot_reservations_capacity_scope
		ON slot_reservations (resource_id, start_time, end_time);
	`).Error
	if err != nil {
		return err
	}

	// Index for exact-window capacity counts on bookings
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_capacity_scope
		ON bookings (resource_id, start_time, end_time, status);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
