package database

import (
	"bookly/internal/appointments"
	"bookly/internal/bookings"
	"bookly/internal/questions"
	"bookly/internal/reservations"
	"bookly/internal/resources"
	"bookly/internal/schedules"
	"bookly/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	// uuid_generate_v4 defaults need the extension in place first
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}

	err := db.AutoMigrate(
		&users.User{},
		&resources.Resource{},
		&appointments.AppointmentType{},
		&schedules.Schedule{},
		&questions.CustomQuestion{},
		&reservations.SlotReservation{},
		&bookings.Booking{},
		&bookings.QuestionResponse{},
	)
	if err != nil {
		return err
	}

	return MigrateConstraints(db)
}
