package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"bookly/internal/notifications"
	"bookly/internal/shared/apperrors"
)

type fakeBookingRepo struct {
	byID map[uuid.UUID]*Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{byID: map[uuid.UUID]*Booking{}}
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	if booking, ok := f.byID[id]; ok {
		copied := *booking
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBookingRepo) GetByCustomer(ctx context.Context, customerID uuid.UUID, query BookingListQuery) ([]Booking, int64, error) {
	var out []Booking
	for _, booking := range f.byID {
		if booking.CustomerID != customerID {
			continue
		}
		if query.Status != nil && booking.Status != *query.Status {
			continue
		}
		out = append(out, *booking)
	}
	return out, int64(len(out)), nil
}

func (f *fakeBookingRepo) Update(ctx context.Context, booking *Booking) error {
	f.byID[booking.ID] = booking
	return nil
}

func (f *fakeBookingRepo) CountActiveInWindow(ctx context.Context, appointmentTypeID uuid.UUID, resourceID *uuid.UUID, startTime, endTime time.Time) (int64, error) {
	var count int64
	for _, booking := range f.byID {
		if !booking.Status.ConsumesCapacity() || !booking.StartTime.Equal(startTime) || !booking.EndTime.Equal(endTime) {
			continue
		}
		if resourceID != nil {
			if booking.ResourceID == nil || *booking.ResourceID != *resourceID {
				continue
			}
		} else if booking.AppointmentTypeID != appointmentTypeID || booking.ResourceID != nil {
			continue
		}
		count++
	}
	return count, nil
}

type recordingPublisher struct {
	events []notifications.BookingEvent
}

func (r *recordingPublisher) Publish(event notifications.BookingEvent) error {
	r.events = append(r.events, event)
	return nil
}

func (r *recordingPublisher) Close() error { return nil }

func seedBooking(repo *fakeBookingRepo, status Status) *Booking {
	start := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	booking := &Booking{
		ID:                uuid.New(),
		AppointmentTypeID: uuid.New(),
		CustomerID:        uuid.New(),
		StartTime:         start,
		EndTime:           start.Add(30 * time.Minute),
		Status:            status,
		PaymentStatus:     PaymentUnpaid,
	}
	repo.byID[booking.ID] = booking
	return booking
}

func strPtr(s string) *string { return &s }

func TestGetByID(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := NewService(repo, &recordingPublisher{})

	seeded := seedBooking(repo, StatusPending)

	found, err := svc.GetByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, found.ID)

	_, err = svc.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGetByCustomer(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := NewService(repo, &recordingPublisher{})
	seeded := seedBooking(repo, StatusPending)

	listed, total, err := svc.GetByCustomer(context.Background(), seeded.CustomerID, BookingListQuery{})
	require.NoError(t, err)
	assert.Len(t, listed, 1)
	assert.EqualValues(t, 1, total)

	badStatus := Status("ARCHIVED")
	_, _, err = svc.GetByCustomer(context.Background(), seeded.CustomerID, BookingListQuery{Status: &badStatus})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestUpdateStatus(t *testing.T) {
	t.Run("confirms a pending booking", func(t *testing.T) {
		repo := newFakeBookingRepo()
		svc := NewService(repo, &recordingPublisher{})
		seeded := seedBooking(repo, StatusPending)

		updated, err := svc.UpdateStatus(context.Background(), seeded.ID, UpdateBookingRequest{
			Status:           strPtr("CONFIRMED"),
			PaymentStatus:    strPtr("PAID"),
			PaymentReference: strPtr("pay_98765"),
		})
		require.NoError(t, err)

		assert.Equal(t, StatusConfirmed, updated.Status)
		assert.Equal(t, PaymentPaid, updated.PaymentStatus)
		require.NotNil(t, updated.PaymentReference)
		assert.Equal(t, "pay_98765", *updated.PaymentReference)
	})

	t.Run("rejects a backwards transition", func(t *testing.T) {
		repo := newFakeBookingRepo()
		svc := NewService(repo, &recordingPublisher{})
		seeded := seedBooking(repo, StatusConfirmed)

		_, err := svc.UpdateStatus(context.Background(), seeded.ID, UpdateBookingRequest{
			Status: strPtr("PENDING"),
		})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		repo := newFakeBookingRepo()
		svc := NewService(repo, &recordingPublisher{})
		seeded := seedBooking(repo, StatusPending)

		_, err := svc.UpdateStatus(context.Background(), seeded.ID, UpdateBookingRequest{
			Status: strPtr("ARCHIVED"),
		})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("cancelling via update stamps the cancellation time", func(t *testing.T) {
		repo := newFakeBookingRepo()
		publisher := &recordingPublisher{}
		svc := NewService(repo, publisher)
		seeded := seedBooking(repo, StatusPending)

		updated, err := svc.UpdateStatus(context.Background(), seeded.ID, UpdateBookingRequest{
			Status: strPtr("CANCELLED"),
		})
		require.NoError(t, err)

		assert.Equal(t, StatusCancelled, updated.Status)
		require.NotNil(t, updated.CancelledAt)
		require.Len(t, publisher.events, 1)
		assert.Equal(t, notifications.EventBookingCancelled, publisher.events[0].Type)
	})

	t.Run("same status is a no-op, not a transition error", func(t *testing.T) {
		repo := newFakeBookingRepo()
		svc := NewService(repo, &recordingPublisher{})
		seeded := seedBooking(repo, StatusConfirmed)

		updated, err := svc.UpdateStatus(context.Background(), seeded.ID, UpdateBookingRequest{
			Status: strPtr("CONFIRMED"),
		})
		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, updated.Status)
	})
}

func TestCancel(t *testing.T) {
	t.Run("frees the seat and publishes the event", func(t *testing.T) {
		repo := newFakeBookingRepo()
		publisher := &recordingPublisher{}
		svc := NewService(repo, publisher)
		seeded := seedBooking(repo, StatusConfirmed)

		cancelled, err := svc.Cancel(context.Background(), seeded.ID)
		require.NoError(t, err)

		assert.Equal(t, StatusCancelled, cancelled.Status)
		assert.False(t, cancelled.Status.ConsumesCapacity())
		require.NotNil(t, cancelled.CancelledAt)

		require.Len(t, publisher.events, 1)
		assert.Equal(t, cancelled.ID.String(), publisher.events[0].BookingID)

		count, err := repo.CountActiveInWindow(context.Background(),
			seeded.AppointmentTypeID, nil, seeded.StartTime, seeded.EndTime)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("cancelling a completed booking fails", func(t *testing.T) {
		repo := newFakeBookingRepo()
		svc := NewService(repo, &recordingPublisher{})
		seeded := seedBooking(repo, StatusCompleted)

		_, err := svc.Cancel(context.Background(), seeded.ID)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("unknown booking is not found", func(t *testing.T) {
		repo := newFakeBookingRepo()
		svc := NewService(repo, &recordingPublisher{})

		_, err := svc.Cancel(context.Background(), uuid.New())
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}
