package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"bookly/internal/appointments"
	"bookly/internal/bookings"
	"bookly/internal/notifications"
	"bookly/internal/questions"
	"bookly/internal/resources"
	"bookly/internal/schedules"
	"bookly/internal/shared/apperrors"
)

// fakeRepo scripts repository behavior for service tests.
type fakeRepo struct {
	reserveRemaining int
	reserveErr       error
	reservedHold     *SlotReservation

	activeHold *SlotReservation

	extendedAt time.Time
	storedHold *SlotReservation

	holdCounts    map[string]int64
	bookingCounts map[string]int64

	sweeps int
}

func windowKey(start time.Time) string { return start.Format(time.RFC3339) }

func (f *fakeRepo) SweepExpired(ctx context.Context) (int64, error) {
	f.sweeps++
	return 0, nil
}

func (f *fakeRepo) Reserve(ctx context.Context, hold *SlotReservation) (int, error) {
	if f.reserveErr != nil {
		return 0, f.reserveErr
	}
	hold.ID = uuid.New()
	hold.CreatedAt = time.Now()
	f.reservedHold = hold
	return f.reserveRemaining, nil
}

func (f *fakeRepo) Release(ctx context.Context, id, customerID uuid.UUID) (*SlotReservation, error) {
	if f.storedHold == nil || f.storedHold.ID != id || f.storedHold.CustomerID != customerID {
		return nil, apperrors.NotFoundf("reservation not found or already released")
	}
	released := f.storedHold
	f.storedHold = nil
	return released, nil
}

func (f *fakeRepo) Extend(ctx context.Context, id, customerID uuid.UUID, newExpiresAt time.Time) (*SlotReservation, error) {
	if f.storedHold == nil || f.storedHold.ID != id || f.storedHold.CustomerID != customerID {
		return nil, apperrors.NotFoundf("reservation not found or already expired")
	}
	f.extendedAt = newExpiresAt
	f.storedHold.ExpiresAt = newExpiresAt
	return f.storedHold, nil
}

func (f *fakeRepo) Confirm(ctx context.Context, id, customerID uuid.UUID, build BookingBuilder) (*bookings.Booking, error) {
	if f.storedHold == nil || f.storedHold.ID != id || f.storedHold.CustomerID != customerID || f.storedHold.IsExpired(time.Now()) {
		return nil, apperrors.NotFoundf("reservation not found, expired, or does not belong to you")
	}
	booking, responses, err := build(f.storedHold)
	if err != nil {
		return nil, err
	}
	booking.ID = uuid.New()
	for i := range responses {
		responses[i].BookingID = booking.ID
	}
	booking.QuestionResponses = responses
	f.storedHold = nil
	return booking, nil
}

func (f *fakeRepo) GetActiveByCustomer(ctx context.Context, customerID uuid.UUID) (*SlotReservation, error) {
	if f.activeHold == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.activeHold, nil
}

func (f *fakeRepo) CountActiveHolds(ctx context.Context, scope CapacityScope, start, end time.Time) (int64, error) {
	return f.holdCounts[windowKey(start)], nil
}

func (f *fakeRepo) CountActiveBookings(ctx context.Context, scope CapacityScope, start, end time.Time) (int64, error) {
	return f.bookingCounts[windowKey(start)], nil
}

type fakeAppointmentRepo struct {
	byID map[uuid.UUID]*appointments.AppointmentType
}

func (f *fakeAppointmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*appointments.AppointmentType, error) {
	if at, ok := f.byID[id]; ok {
		return at, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAppointmentRepo) GetAllPublished(ctx context.Context) ([]appointments.AppointmentType, error) {
	return nil, nil
}

type fakeScheduleRepo struct {
	rows []schedules.Schedule
}

func (f *fakeScheduleRepo) GetByAppointmentType(ctx context.Context, id uuid.UUID) ([]schedules.Schedule, error) {
	return f.rows, nil
}

func (f *fakeScheduleRepo) GetByAppointmentTypeAndDay(ctx context.Context, id uuid.UUID, day int) ([]schedules.Schedule, error) {
	var filtered []schedules.Schedule
	for _, row := range f.rows {
		if row.DayOfWeek == day {
			filtered = append(filtered, row)
		}
	}
	return filtered, nil
}

type fakeResourceRepo struct {
	rows []resources.Resource
}

func (f *fakeResourceRepo) GetActiveByID(ctx context.Context, id uuid.UUID) (*resources.Resource, error) {
	for i := range f.rows {
		if f.rows[i].ID == id {
			return &f.rows[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeResourceRepo) GetActiveByOrganiser(ctx context.Context, organiserID uuid.UUID) ([]resources.Resource, error) {
	return f.rows, nil
}

type fakeQuestionRepo struct {
	rows []questions.CustomQuestion
}

func (f *fakeQuestionRepo) GetByAppointmentType(ctx context.Context, id uuid.UUID) ([]questions.CustomQuestion, error) {
	return f.rows, nil
}

type fakePublisher struct {
	events []notifications.BookingEvent
}

func (f *fakePublisher) Publish(event notifications.BookingEvent) error {
	f.events = append(f.events, event)
	return nil
}

func (f *fakePublisher) Close() error { return nil }

type serviceFixture struct {
	repo        *fakeRepo
	appointment *fakeAppointmentRepo
	schedule    *fakeScheduleRepo
	resource    *fakeResourceRepo
	question    *fakeQuestionRepo
	publisher   *fakePublisher
	service     Service
}

func newFixture() *serviceFixture {
	f := &serviceFixture{
		repo:        &fakeRepo{holdCounts: map[string]int64{}, bookingCounts: map[string]int64{}},
		appointment: &fakeAppointmentRepo{byID: map[uuid.UUID]*appointments.AppointmentType{}},
		schedule:    &fakeScheduleRepo{},
		resource:    &fakeResourceRepo{},
		question:    &fakeQuestionRepo{},
		publisher:   &fakePublisher{},
	}
	f.service = NewService(f.repo, f.appointment, f.schedule, f.resource, f.question, f.publisher, 5*time.Minute)
	return f
}

func validReserveInput() ReserveInput {
	start := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	return ReserveInput{
		AppointmentTypeID: uuid.New(),
		CustomerID:        uuid.New(),
		StartTime:         start,
		EndTime:           start.Add(30 * time.Minute),
	}
}

func TestReserve(t *testing.T) {
	t.Run("rejects missing identifiers", func(t *testing.T) {
		f := newFixture()
		input := validReserveInput()
		input.CustomerID = uuid.Nil

		_, err := f.service.Reserve(context.Background(), input)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("rejects an inverted window", func(t *testing.T) {
		f := newFixture()
		input := validReserveInput()
		input.EndTime = input.StartTime.Add(-time.Minute)

		_, err := f.service.Reserve(context.Background(), input)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("returns the hold with a full TTL countdown", func(t *testing.T) {
		f := newFixture()
		f.repo.reserveRemaining = 3

		before := time.Now()
		result, err := f.service.Reserve(context.Background(), validReserveInput())
		require.NoError(t, err)

		assert.Equal(t, 3, result.RemainingCapacity)
		assert.Equal(t, 5, result.TimeoutMinutes)
		assert.WithinDuration(t, before.Add(5*time.Minute), result.ExpiresAt, 2*time.Second)
		assert.NotEqual(t, uuid.Nil, result.Reservation.ID)
	})

	t.Run("propagates conflict from the store", func(t *testing.T) {
		f := newFixture()
		f.repo.reserveErr = apperrors.Conflictf("no capacity available for this time slot")

		_, err := f.service.Reserve(context.Background(), validReserveInput())
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})
}

func TestExtend(t *testing.T) {
	f := newFixture()
	customerID := uuid.New()
	hold := &SlotReservation{
		ID:         uuid.New(),
		CustomerID: customerID,
		// Nearly lapsed; the reset must discard this remainder entirely
		ExpiresAt: time.Now().Add(10 * time.Second),
	}
	f.repo.storedHold = hold

	before := time.Now()
	extended, err := f.service.Extend(context.Background(), hold.ID, customerID)
	require.NoError(t, err)

	assert.WithinDuration(t, before.Add(5*time.Minute), extended.ExpiresAt, 2*time.Second)
	assert.WithinDuration(t, before.Add(5*time.Minute), f.repo.extendedAt, 2*time.Second)
}

func TestConfirm(t *testing.T) {
	newHold := func(customerID uuid.UUID) *SlotReservation {
		start := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
		resourceID := uuid.New()
		return &SlotReservation{
			ID:                uuid.New(),
			AppointmentTypeID: uuid.New(),
			ResourceID:        &resourceID,
			CustomerID:        customerID,
			StartTime:         start,
			EndTime:           start.Add(30 * time.Minute),
			ExpiresAt:         time.Now().Add(3 * time.Minute),
		}
	}

	t.Run("without payment reference lands pending and unpaid", func(t *testing.T) {
		f := newFixture()
		customerID := uuid.New()
		hold := newHold(customerID)
		f.repo.storedHold = hold

		booking, err := f.service.Confirm(context.Background(), hold.ID, ConfirmInput{CustomerID: customerID})
		require.NoError(t, err)

		assert.Equal(t, bookings.StatusPending, booking.Status)
		assert.Equal(t, bookings.PaymentUnpaid, booking.PaymentStatus)
		assert.Nil(t, booking.PaymentReference)
	})

	t.Run("with payment reference lands confirmed and paid", func(t *testing.T) {
		f := newFixture()
		customerID := uuid.New()
		hold := newHold(customerID)
		f.repo.storedHold = hold
		paymentRef := "pay_12345"

		booking, err := f.service.Confirm(context.Background(), hold.ID, ConfirmInput{
			CustomerID:       customerID,
			PaymentReference: &paymentRef,
		})
		require.NoError(t, err)

		assert.Equal(t, bookings.StatusConfirmed, booking.Status)
		assert.Equal(t, bookings.PaymentPaid, booking.PaymentStatus)
	})

	t.Run("carries the hold window and scope onto the booking", func(t *testing.T) {
		f := newFixture()
		customerID := uuid.New()
		hold := newHold(customerID)
		f.repo.storedHold = hold

		booking, err := f.service.Confirm(context.Background(), hold.ID, ConfirmInput{CustomerID: customerID})
		require.NoError(t, err)

		assert.Equal(t, hold.AppointmentTypeID, booking.AppointmentTypeID)
		assert.Equal(t, hold.ResourceID, booking.ResourceID)
		assert.Equal(t, hold.StartTime, booking.StartTime)
		assert.Equal(t, hold.EndTime, booking.EndTime)
		assert.Equal(t, customerID, booking.CustomerID)
	})

	t.Run("attaches intake answers to the new booking", func(t *testing.T) {
		f := newFixture()
		customerID := uuid.New()
		hold := newHold(customerID)
		f.repo.storedHold = hold
		questionID := uuid.New()

		booking, err := f.service.Confirm(context.Background(), hold.ID, ConfirmInput{
			CustomerID: customerID,
			QuestionResponses: []QuestionAnswer{
				{QuestionID: questionID, AnswerValue: "first visit"},
			},
		})
		require.NoError(t, err)

		require.Len(t, booking.QuestionResponses, 1)
		assert.Equal(t, questionID, booking.QuestionResponses[0].QuestionID)
		assert.Equal(t, booking.ID, booking.QuestionResponses[0].BookingID)
	})

	t.Run("rejects a missing mandatory answer", func(t *testing.T) {
		f := newFixture()
		customerID := uuid.New()
		hold := newHold(customerID)
		f.repo.storedHold = hold
		f.question.rows = []questions.CustomQuestion{
			{ID: uuid.New(), Label: "What would you like to discuss?", IsMandatory: true},
		}

		_, err := f.service.Confirm(context.Background(), hold.ID, ConfirmInput{CustomerID: customerID})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("treats a whitespace answer to a mandatory question as missing", func(t *testing.T) {
		f := newFixture()
		customerID := uuid.New()
		hold := newHold(customerID)
		f.repo.storedHold = hold
		questionID := uuid.New()
		f.question.rows = []questions.CustomQuestion{
			{ID: questionID, Label: "Reason for visit", IsMandatory: true},
		}

		_, err := f.service.Confirm(context.Background(), hold.ID, ConfirmInput{
			CustomerID:        customerID,
			QuestionResponses: []QuestionAnswer{{QuestionID: questionID, AnswerValue: "   "}},
		})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("expired hold reads as not found even before a sweep", func(t *testing.T) {
		f := newFixture()
		customerID := uuid.New()
		hold := newHold(customerID)
		hold.ExpiresAt = time.Now().Add(-time.Second)
		f.repo.storedHold = hold

		_, err := f.service.Confirm(context.Background(), hold.ID, ConfirmInput{CustomerID: customerID})
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("publishes a confirmed event", func(t *testing.T) {
		f := newFixture()
		customerID := uuid.New()
		hold := newHold(customerID)
		f.repo.storedHold = hold

		booking, err := f.service.Confirm(context.Background(), hold.ID, ConfirmInput{CustomerID: customerID})
		require.NoError(t, err)

		require.Len(t, f.publisher.events, 1)
		assert.Equal(t, notifications.EventBookingConfirmed, f.publisher.events[0].Type)
		assert.Equal(t, booking.ID.String(), f.publisher.events[0].BookingID)
	})
}

func TestRelease(t *testing.T) {
	t.Run("release then re-reserve succeeds", func(t *testing.T) {
		f := newFixture()
		customerID := uuid.New()
		hold := &SlotReservation{ID: uuid.New(), CustomerID: customerID, ExpiresAt: time.Now().Add(time.Minute)}
		f.repo.storedHold = hold

		released, err := f.service.Release(context.Background(), hold.ID, customerID)
		require.NoError(t, err)
		assert.Equal(t, hold.ID, released.ID)

		f.repo.reserveRemaining = 0
		input := validReserveInput()
		input.CustomerID = customerID
		_, err = f.service.Reserve(context.Background(), input)
		assert.NoError(t, err)
	})

	t.Run("releasing twice reads as not found", func(t *testing.T) {
		f := newFixture()
		customerID := uuid.New()
		hold := &SlotReservation{ID: uuid.New(), CustomerID: customerID, ExpiresAt: time.Now().Add(time.Minute)}
		f.repo.storedHold = hold

		_, err := f.service.Release(context.Background(), hold.ID, customerID)
		require.NoError(t, err)

		_, err = f.service.Release(context.Background(), hold.ID, customerID)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestActiveReservation(t *testing.T) {
	t.Run("no live hold", func(t *testing.T) {
		f := newFixture()

		active, err := f.service.ActiveReservation(context.Background(), uuid.New())
		require.NoError(t, err)

		assert.False(t, active.HasActive)
		assert.Nil(t, active.Reservation)
		assert.Equal(t, 1, f.repo.sweeps, "lookup sweeps expired holds first")
	})

	t.Run("reports the countdown for a live hold", func(t *testing.T) {
		f := newFixture()
		f.repo.activeHold = &SlotReservation{
			ID:        uuid.New(),
			ExpiresAt: time.Now().Add(4 * time.Minute),
		}

		active, err := f.service.ActiveReservation(context.Background(), uuid.New())
		require.NoError(t, err)

		assert.True(t, active.HasActive)
		assert.InDelta(t, 240, active.RemainingSeconds, 2)
	})
}

func TestAvailableSlots(t *testing.T) {
	day := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC) // a Monday

	setupAppointment := func(f *serviceFixture) *appointments.AppointmentType {
		at := &appointments.AppointmentType{
			ID:              uuid.New(),
			OrganiserID:     uuid.New(),
			Title:           "Initial Consultation",
			DurationMinutes: 30,
		}
		f.appointment.byID[at.ID] = at
		return at
	}

	t.Run("unknown appointment type is not found", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.AvailableSlots(context.Background(), uuid.New(), day)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("no schedule for the weekday yields empty slots", func(t *testing.T) {
		f := newFixture()
		at := setupAppointment(f)
		f.schedule.rows = []schedules.Schedule{
			{DayOfWeek: 2, StartTime: "09:00:00", EndTime: "10:00:00"},
		}

		availability, err := f.service.AvailableSlots(context.Background(), at.ID, day)
		require.NoError(t, err)

		assert.Empty(t, availability.Slots)
		assert.Equal(t, "2026-03-02", availability.Date)
		assert.Equal(t, 1, f.repo.sweeps)
	})

	t.Run("annotates windows per resource with remaining capacity", func(t *testing.T) {
		f := newFixture()
		at := setupAppointment(f)
		f.schedule.rows = []schedules.Schedule{
			{DayOfWeek: 1, StartTime: "09:00:00", EndTime: "10:00:00"},
		}
		f.resource.rows = []resources.Resource{
			{ID: uuid.New(), Name: "Room A", Capacity: 2},
		}

		nine := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
		f.repo.holdCounts[windowKey(nine)] = 1
		f.repo.bookingCounts[windowKey(nine)] = 1

		availability, err := f.service.AvailableSlots(context.Background(), at.ID, day)
		require.NoError(t, err)
		require.Len(t, availability.Slots, 2)

		full := availability.Slots[0]
		assert.Equal(t, 0, full.RemainingCapacity)
		assert.False(t, full.Available)
		assert.Equal(t, 2, full.TotalCapacity)
		require.NotNil(t, full.ResourceName)
		assert.Equal(t, "Room A", *full.ResourceName)

		open := availability.Slots[1]
		assert.Equal(t, 2, open.RemainingCapacity)
		assert.True(t, open.Available)
	})

	t.Run("falls back to a singleton pass without resources", func(t *testing.T) {
		f := newFixture()
		at := setupAppointment(f)
		f.schedule.rows = []schedules.Schedule{
			{DayOfWeek: 1, StartTime: "09:00:00", EndTime: "09:30:00"},
		}

		nine := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
		f.repo.holdCounts[windowKey(nine)] = 1

		availability, err := f.service.AvailableSlots(context.Background(), at.ID, day)
		require.NoError(t, err)
		require.Len(t, availability.Slots, 1)

		slot := availability.Slots[0]
		assert.Nil(t, slot.ResourceID)
		assert.Equal(t, 1, slot.TotalCapacity)
		assert.Equal(t, 0, slot.RemainingCapacity)
		assert.False(t, slot.Available)
	})

	t.Run("clamps oversubscription to zero for display", func(t *testing.T) {
		f := newFixture()
		at := setupAppointment(f)
		f.schedule.rows = []schedules.Schedule{
			{DayOfWeek: 1, StartTime: "09:00:00", EndTime: "09:30:00"},
		}

		nine := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
		f.repo.holdCounts[windowKey(nine)] = 2
		f.repo.bookingCounts[windowKey(nine)] = 1

		availability, err := f.service.AvailableSlots(context.Background(), at.ID, day)
		require.NoError(t, err)
		require.Len(t, availability.Slots, 1)

		assert.Equal(t, 0, availability.Slots[0].RemainingCapacity)
		assert.False(t, availability.Slots[0].Available)
	})

	t.Run("is idempotent with no intervening writes", func(t *testing.T) {
		f := newFixture()
		at := setupAppointment(f)
		f.schedule.rows = []schedules.Schedule{
			{DayOfWeek: 1, StartTime: "09:00:00", EndTime: "11:00:00"},
		}

		first, err := f.service.AvailableSlots(context.Background(), at.ID, day)
		require.NoError(t, err)
		second, err := f.service.AvailableSlots(context.Background(), at.ID, day)
		require.NoError(t, err)

		assert.Equal(t, first.Slots, second.Slots)
	})
}
