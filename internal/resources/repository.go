package resources

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository is the read-side API the reservation core uses. Resource CRUD
// belongs to organiser tooling and has no surface here.
type Repository interface {
	GetActiveByID(ctx context.Context, id uuid.UUID) (*Resource, error)
	GetActiveByOrganiser(ctx context.Context, organiserID uuid.UUID) ([]Resource, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetActiveByID(ctx context.Context, id uuid.UUID) (*Resource, error) {
	var resource Resource
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&resource).Error
	if err != nil {
		return nil, err
	}
	return &resource, nil
}

func (r *repository) GetActiveByOrganiser(ctx context.Context, organiserID uuid.UUID) ([]Resource, error) {
	var list []Resource
	err := r.db.WithContext(ctx).
		Where("organiser_id = ? AND is_active = ?", organiserID, true).
		Order("name").
		Find(&list).Error
	return list, err
}
