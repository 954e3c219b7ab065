package questions

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	GetByAppointmentType(ctx context.Context, appointmentTypeID uuid.UUID) ([]CustomQuestion, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByAppointmentType(ctx context.Context, appointmentTypeID uuid.UUID) ([]CustomQuestion, error) {
	var list []CustomQuestion
	err := r.db.WithContext(ctx).
		Where("appointment_type_id = ?", appointmentTypeID).
		Order("sort_order").
		Find(&list).Error
	return list, err
}
