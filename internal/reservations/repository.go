package reservations

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bookly/internal/appointments"
	"bookly/internal/bookings"
	"bookly/internal/resources"
	"bookly/internal/shared/apperrors"
)

// BookingBuilder derives the committed booking and its intake answers from a
// validated hold. Called inside the confirm transaction.
type BookingBuilder func(hold *SlotReservation) (*bookings.Booking, []bookings.QuestionResponse, error)

type Repository interface {
	SweepExpired(ctx context.Context) (int64, error)
	Reserve(ctx context.Context, hold *SlotReservation) (int, error)
	Release(ctx context.Context, id, customerID uuid.UUID) (*SlotReservation, error)
	Extend(ctx context.Context, id, customerID uuid.UUID, newExpiresAt time.Time) (*SlotReservation, error)
	Confirm(ctx context.Context, id, customerID uuid.UUID, build BookingBuilder) (*bookings.Booking, error)
	GetActiveByCustomer(ctx context.Context, customerID uuid.UUID) (*SlotReservation, error)
	CountActiveHolds(ctx context.Context, scope CapacityScope, start, end time.Time) (int64, error)
	CountActiveBookings(ctx context.Context, scope CapacityScope, start, end time.Time) (int64, error)
}

type repository struct {
	db          *gorm.DB
	bookingRepo bookings.Repository
}

func NewRepository(db *gorm.DB, bookingRepo bookings.Repository) Repository {
	return &repository{db: db, bookingRepo: bookingRepo}
}

// SweepExpired physically deletes every lapsed hold, reclaiming its capacity.
func (r *repository) SweepExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&SlotReservation{})
	return result.RowsAffected, result.Error
}

// Reserve runs the full hold-creation protocol in one transaction: sweep,
// duplicate-hold check, capacity recount under a row lock on the scoping row,
// then insert. Two concurrent reserves on the same window serialize on that
// lock, so the last unit of capacity is never handed out twice.
//
// Returns the capacity remaining after this hold was taken.
func (r *repository) Reserve(ctx context.Context, hold *SlotReservation) (int, error) {
	remaining := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		if err := tx.Where("expires_at < ?", now).Delete(&SlotReservation{}).Error; err != nil {
			return err
		}

		var duplicates int64
		err := tx.Model(&SlotReservation{}).
			Where("customer_id = ? AND appointment_type_id = ? AND expires_at > ?",
				hold.CustomerID, hold.AppointmentTypeID, now).
			Count(&duplicates).Error
		if err != nil {
			return err
		}
		if duplicates > 0 {
			return apperrors.Conflictf("you already have an active reservation for this appointment type")
		}

		scope := hold.Scope()
		capacity, err := lockCapacity(tx, scope)
		if err != nil {
			return err
		}

		activeHolds, err := countActiveHolds(tx, scope, hold.StartTime, hold.EndTime, now)
		if err != nil {
			return err
		}
		activeBookings, err := countActiveBookings(tx, scope, hold.StartTime, hold.EndTime)
		if err != nil {
			return err
		}

		available := capacity - int(activeHolds) - int(activeBookings)
		if available <= 0 {
			return apperrors.Conflictf("no capacity available for this time slot")
		}

		if err := tx.Create(hold).Error; err != nil {
			// The unique index on (customer_id, appointment_type_id) backstops
			// the duplicate check above under concurrent reserves.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.Conflictf("you already have a reservation for this slot")
			}
			return err
		}
		remaining = available - 1
		return nil
	})
	return remaining, err
}

// Release deletes the hold iff it belongs to the customer. Expired holds are
// swept first, so a lapsed hold reads as not found.
func (r *repository) Release(ctx context.Context, id, customerID uuid.UUID) (*SlotReservation, error) {
	var released *SlotReservation
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("expires_at < ?", time.Now()).Delete(&SlotReservation{}).Error; err != nil {
			return err
		}

		var hold SlotReservation
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND customer_id = ?", id, customerID).
			First(&hold).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFoundf("reservation not found or already released")
		}
		if err != nil {
			return err
		}

		if err := tx.Delete(&SlotReservation{}, "id = ?", hold.ID).Error; err != nil {
			return err
		}
		released = &hold
		return nil
	})
	return released, err
}

// Extend resets expires_at to the supplied deadline iff the hold still
// belongs to the customer and has not lapsed.
func (r *repository) Extend(ctx context.Context, id, customerID uuid.UUID, newExpiresAt time.Time) (*SlotReservation, error) {
	var extended *SlotReservation
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var hold SlotReservation
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND customer_id = ? AND expires_at > ?", id, customerID, time.Now()).
			First(&hold).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFoundf("reservation not found or already expired")
		}
		if err != nil {
			return err
		}

		hold.ExpiresAt = newExpiresAt
		if err := tx.Model(&SlotReservation{}).
			Where("id = ?", hold.ID).
			Update("expires_at", newExpiresAt).Error; err != nil {
			return err
		}
		extended = &hold
		return nil
	})
	return extended, err
}

// Confirm converts a live hold into a booking atomically: the hold is locked
// and re-checked for expiry, the booking and its intake answers are inserted,
// and the hold is deleted. A hold racing the sweeper reads as not found.
func (r *repository) Confirm(ctx context.Context, id, customerID uuid.UUID, build BookingBuilder) (*bookings.Booking, error) {
	var booking *bookings.Booking
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var hold SlotReservation
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND customer_id = ? AND expires_at > ?", id, customerID, time.Now()).
			First(&hold).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFoundf("reservation not found, expired, or does not belong to you")
		}
		if err != nil {
			return err
		}

		newBooking, responses, err := build(&hold)
		if err != nil {
			return err
		}

		if err := tx.Create(newBooking).Error; err != nil {
			return err
		}
		if len(responses) > 0 {
			for i := range responses {
				responses[i].BookingID = newBooking.ID
			}
			if err := tx.Create(&responses).Error; err != nil {
				return err
			}
			newBooking.QuestionResponses = responses
		}

		if err := tx.Delete(&SlotReservation{}, "id = ?", hold.ID).Error; err != nil {
			return err
		}
		booking = newBooking
		return nil
	})
	return booking, err
}

// GetActiveByCustomer returns the customer's newest unexpired hold, or
// gorm.ErrRecordNotFound when none exists.
func (r *repository) GetActiveByCustomer(ctx context.Context, customerID uuid.UUID) (*SlotReservation, error) {
	var hold SlotReservation
	err := r.db.WithContext(ctx).
		Preload("AppointmentType").
		Preload("Resource").
		Where("customer_id = ? AND expires_at > ?", customerID, time.Now()).
		Order("created_at DESC").
		First(&hold).Error
	if err != nil {
		return nil, err
	}
	return &hold, nil
}

func (r *repository) CountActiveHolds(ctx context.Context, scope CapacityScope, start, end time.Time) (int64, error) {
	return countActiveHolds(r.db.WithContext(ctx), scope, start, end, time.Now())
}

func (r *repository) CountActiveBookings(ctx context.Context, scope CapacityScope, start, end time.Time) (int64, error) {
	var resourceID *uuid.UUID
	if id, ok := scope.ResourceID(); ok {
		resourceID = &id
	}
	return r.bookingRepo.CountActiveInWindow(ctx, scope.AppointmentTypeID(), resourceID, start, end)
}

// lockCapacity takes a row lock on the scope's anchor row and returns its
// total capacity. The lock is what serializes concurrent reserves.
func lockCapacity(tx *gorm.DB, scope CapacityScope) (int, error) {
	if resourceID, ok := scope.ResourceID(); ok {
		var resource resources.Resource
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND is_active = ?", resourceID, true).
			First(&resource).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperrors.NotFoundf("resource not found or inactive")
		}
		if err != nil {
			return 0, err
		}
		return resource.Capacity, nil
	}

	var appointmentType appointments.AppointmentType
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", scope.AppointmentTypeID()).
		First(&appointmentType).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, apperrors.NotFoundf("appointment type not found")
	}
	if err != nil {
		return 0, err
	}
	return SingletonCapacity, nil
}

// Capacity matches on exact window equality, not overlap. All slots created
// through the generator share one fixed grid, which makes this sound; windows
// created outside that grid would need overlap accounting instead.
func scopeQuery(q *gorm.DB, scope CapacityScope, start, end time.Time) *gorm.DB {
	q = q.Where("start_time = ? AND end_time = ?", start, end)
	if resourceID, ok := scope.ResourceID(); ok {
		return q.Where("resource_id = ?", resourceID)
	}
	return q.Where("appointment_type_id = ? AND resource_id IS NULL", scope.AppointmentTypeID())
}

func countActiveHolds(db *gorm.DB, scope CapacityScope, start, end time.Time, now time.Time) (int64, error) {
	var count int64
	q := scopeQuery(db.Model(&SlotReservation{}), scope, start, end).
		Where("expires_at > ?", now)
	err := q.Count(&count).Error
	return count, err
}

func countActiveBookings(db *gorm.DB, scope CapacityScope, start, end time.Time) (int64, error) {
	var count int64
	q := scopeQuery(db.Model(&bookings.Booking{}), scope, start, end).
		Where("status IN ?", []bookings.Status{bookings.StatusPending, bookings.StatusConfirmed})
	err := q.Count(&count).Error
	return count, err
}
