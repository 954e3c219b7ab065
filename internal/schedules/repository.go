package schedules

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository reads weekly schedule templates. Schedule administration is an
// external collaborator.
type Repository interface {
	GetByAppointmentType(ctx context.Context, appointmentTypeID uuid.UUID) ([]Schedule, error)
	GetByAppointmentTypeAndDay(ctx context.Context, appointmentTypeID uuid.UUID, dayOfWeek int) ([]Schedule, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByAppointmentType(ctx context.Context, appointmentTypeID uuid.UUID) ([]Schedule, error) {
	var list []Schedule
	err := r.db.WithContext(ctx).
		Where("appointment_type_id = ?", appointmentTypeID).
		Order("day_of_week, start_time").
		Find(&list).Error
	return list, err
}

func (r *repository) GetByAppointmentTypeAndDay(ctx context.Context, appointmentTypeID uuid.UUID, dayOfWeek int) ([]Schedule, error) {
	var list []Schedule
	err := r.db.WithContext(ctx).
		Where("appointment_type_id = ? AND day_of_week = ?", appointmentTypeID, dayOfWeek).
		Order("start_time").
		Find(&list).Error
	return list, err
}
