package bookings

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingListQuery carries pagination and optional status filtering for
// booking list reads.
type BookingListQuery struct {
	Page   int
	Limit  int
	Status *Status
}

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetByCustomer(ctx context.Context, customerID uuid.UUID, query BookingListQuery) ([]Booking, int64, error)
	Update(ctx context.Context, booking *Booking) error
	CountActiveInWindow(ctx context.Context, appointmentTypeID uuid.UUID, resourceID *uuid.UUID, startTime, endTime time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Preload("QuestionResponses").
		Where("id = ?", id).
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetByCustomer(ctx context.Context, customerID uuid.UUID, query BookingListQuery) ([]Booking, int64, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	baseQuery := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("customer_id = ?", customerID)
	if query.Status != nil {
		baseQuery = baseQuery.Where("status = ?", *query.Status)
	}

	var totalCount int64
	if err := baseQuery.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	var bookings []Booking
	offset := (query.Page - 1) * query.Limit
	err := baseQuery.
		Order("start_time DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&bookings).Error

	return bookings, totalCount, err
}

func (r *repository) Update(ctx context.Context, booking *Booking) error {
	return r.db.WithContext(ctx).Save(booking).Error
}

// CountActiveInWindow counts seat-consuming bookings for an exact slot
// window. A resource's capacity is shared across every appointment type it
// serves, so a resource-scoped count matches on the resource alone; only
// resource-less bookings count against their appointment type.
func (r *repository) CountActiveInWindow(ctx context.Context, appointmentTypeID uuid.UUID, resourceID *uuid.UUID, startTime, endTime time.Time) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&Booking{}).
		Where("start_time = ? AND end_time = ?", startTime, endTime).
		Where("status IN ?", []Status{StatusPending, StatusConfirmed})
	if resourceID != nil {
		query = query.Where("resource_id = ?", *resourceID)
	} else {
		query = query.Where("appointment_type_id = ? AND resource_id IS NULL", appointmentTypeID)
	}
	err := query.Count(&count).Error
	return count, err
}
