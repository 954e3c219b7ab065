package appointments

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*AppointmentType, error)
	GetAllPublished(ctx context.Context) ([]AppointmentType, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*AppointmentType, error) {
	var at AppointmentType
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&at).Error
	if err != nil {
		return nil, err
	}
	return &at, nil
}

func (r *repository) GetAllPublished(ctx context.Context) ([]AppointmentType, error) {
	var list []AppointmentType
	err := r.db.WithContext(ctx).
		Where("is_published = ?", true).
		Order("title").
		Find(&list).Error
	return list, err
}
