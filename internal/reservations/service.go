package reservations

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bookly/internal/appointments"
	"bookly/internal/bookings"
	"bookly/internal/notifications"
	"bookly/internal/questions"
	"bookly/internal/resources"
	"bookly/internal/schedules"
	"bookly/internal/shared/apperrors"
	"bookly/pkg/logger"
)

// ReserveInput carries everything needed to take a hold on a slot.
type ReserveInput struct {
	AppointmentTypeID uuid.UUID
	ResourceID        *uuid.UUID
	CustomerID        uuid.UUID
	StartTime         time.Time
	EndTime           time.Time
}

// ReserveResult is the reserved hold plus capacity context for the caller.
type ReserveResult struct {
	Reservation       *SlotReservation
	ExpiresAt         time.Time
	TimeoutMinutes    int
	RemainingCapacity int
}

// QuestionAnswer is one intake answer supplied at confirm time.
type QuestionAnswer struct {
	QuestionID  uuid.UUID
	AnswerValue string
}

// ConfirmInput carries the confirm-time payload. PaymentReference presence
// decides whether the booking lands CONFIRMED/PAID or PENDING/UNPAID.
type ConfirmInput struct {
	CustomerID        uuid.UUID
	AssignedUserID    *uuid.UUID
	QuestionResponses []QuestionAnswer
	PaymentReference  *string
}

// ActiveReservation reports whether a customer currently holds a slot.
type ActiveReservation struct {
	HasActive        bool
	Reservation      *SlotReservation
	RemainingSeconds int64
}

// DayAvailability is the available-slots query result for one date.
type DayAvailability struct {
	AppointmentType appointments.AppointmentTypeSummary
	Date            string
	Slots           []Slot
}

type Service interface {
	Reserve(ctx context.Context, input ReserveInput) (*ReserveResult, error)
	Release(ctx context.Context, id, customerID uuid.UUID) (*SlotReservation, error)
	Extend(ctx context.Context, id, customerID uuid.UUID) (*SlotReservation, error)
	Confirm(ctx context.Context, id uuid.UUID, input ConfirmInput) (*bookings.Booking, error)
	ActiveReservation(ctx context.Context, customerID uuid.UUID) (*ActiveReservation, error)
	AvailableSlots(ctx context.Context, appointmentTypeID uuid.UUID, date time.Time) (*DayAvailability, error)
	SweepExpired(ctx context.Context) (int64, error)
}

type service struct {
	repo            Repository
	appointmentRepo appointments.Repository
	scheduleRepo    schedules.Repository
	resourceRepo    resources.Repository
	questionRepo    questions.Repository
	publisher       notifications.Publisher
	holdTTL         time.Duration
	log             *logger.Logger
}

func NewService(
	repo Repository,
	appointmentRepo appointments.Repository,
	scheduleRepo schedules.Repository,
	resourceRepo resources.Repository,
	questionRepo questions.Repository,
	publisher notifications.Publisher,
	holdTTL time.Duration,
) Service {
	return &service{
		repo:            repo,
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepo,
		resourceRepo:    resourceRepo,
		questionRepo:    questionRepo,
		publisher:       publisher,
		holdTTL:         holdTTL,
		log:             logger.GetDefault(),
	}
}

func (s *service) Reserve(ctx context.Context, input ReserveInput) (*ReserveResult, error) {
	if input.AppointmentTypeID == uuid.Nil || input.CustomerID == uuid.Nil {
		return nil, apperrors.Validationf("missing required fields: appointment_type_id, customer_id")
	}
	if input.StartTime.IsZero() || input.EndTime.IsZero() {
		return nil, apperrors.Validationf("missing required fields: start_time, end_time")
	}
	if !input.EndTime.After(input.StartTime) {
		return nil, apperrors.Validationf("end_time must be after start_time")
	}

	expiresAt := time.Now().Add(s.holdTTL)
	hold := &SlotReservation{
		AppointmentTypeID: input.AppointmentTypeID,
		ResourceID:        input.ResourceID,
		CustomerID:        input.CustomerID,
		StartTime:         input.StartTime,
		EndTime:           input.EndTime,
		ExpiresAt:         expiresAt,
	}

	remaining, err := s.repo.Reserve(ctx, hold)
	if err != nil {
		return nil, err
	}

	s.log.LogHoldCreated(ctx, hold.ID.String(), hold.AppointmentTypeID.String(),
		hold.CustomerID.String(), hold.ExpiresAt)

	return &ReserveResult{
		Reservation:       hold,
		ExpiresAt:         expiresAt,
		TimeoutMinutes:    int(s.holdTTL / time.Minute),
		RemainingCapacity: remaining,
	}, nil
}

func (s *service) Release(ctx context.Context, id, customerID uuid.UUID) (*SlotReservation, error) {
	released, err := s.repo.Release(ctx, id, customerID)
	if err != nil {
		return nil, err
	}
	s.log.LogHoldReleased(ctx, released.ID.String(), released.CustomerID.String(), "released")
	return released, nil
}

// Extend resets the countdown to the full hold TTL. Remaining time on the old
// deadline is discarded, never added.
func (s *service) Extend(ctx context.Context, id, customerID uuid.UUID) (*SlotReservation, error) {
	return s.repo.Extend(ctx, id, customerID, time.Now().Add(s.holdTTL))
}

func (s *service) Confirm(ctx context.Context, id uuid.UUID, input ConfirmInput) (*bookings.Booking, error) {
	if input.CustomerID == uuid.Nil {
		return nil, apperrors.Validationf("missing required field: customer_id")
	}

	booking, err := s.repo.Confirm(ctx, id, input.CustomerID, func(hold *SlotReservation) (*bookings.Booking, []bookings.QuestionResponse, error) {
		if err := s.validateMandatoryQuestions(ctx, hold.AppointmentTypeID, input.QuestionResponses); err != nil {
			return nil, nil, err
		}

		status := bookings.StatusPending
		paymentStatus := bookings.PaymentUnpaid
		if input.PaymentReference != nil && *input.PaymentReference != "" {
			status = bookings.StatusConfirmed
			paymentStatus = bookings.PaymentPaid
		}

		newBooking := &bookings.Booking{
			AppointmentTypeID: hold.AppointmentTypeID,
			CustomerID:        hold.CustomerID,
			ResourceID:        hold.ResourceID,
			AssignedUserID:    input.AssignedUserID,
			StartTime:         hold.StartTime,
			EndTime:           hold.EndTime,
			Status:            status,
			PaymentStatus:     paymentStatus,
			PaymentReference:  input.PaymentReference,
		}

		responses := make([]bookings.QuestionResponse, 0, len(input.QuestionResponses))
		for _, answer := range input.QuestionResponses {
			responses = append(responses, bookings.QuestionResponse{
				QuestionID:  answer.QuestionID,
				AnswerValue: answer.AnswerValue,
			})
		}
		return newBooking, responses, nil
	})
	if err != nil {
		return nil, err
	}

	s.log.LogBookingConfirmed(ctx, booking.ID.String(), id.String(), booking.CustomerID.String())
	s.publishConfirmed(booking)

	return booking, nil
}

func (s *service) validateMandatoryQuestions(ctx context.Context, appointmentTypeID uuid.UUID, answers []QuestionAnswer) error {
	questionRows, err := s.questionRepo.GetByAppointmentType(ctx, appointmentTypeID)
	if err != nil {
		return err
	}

	answered := make(map[uuid.UUID]string, len(answers))
	for _, answer := range answers {
		answered[answer.QuestionID] = answer.AnswerValue
	}

	for _, question := range questionRows {
		if !question.IsMandatory {
			continue
		}
		if strings.TrimSpace(answered[question.ID]) == "" {
			return apperrors.Validationf("answer required for question %q", question.Label)
		}
	}
	return nil
}

func (s *service) ActiveReservation(ctx context.Context, customerID uuid.UUID) (*ActiveReservation, error) {
	if swept, err := s.repo.SweepExpired(ctx); err == nil {
		s.log.LogHoldsSwept(ctx, swept)
	}

	hold, err := s.repo.GetActiveByCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &ActiveReservation{HasActive: false}, nil
		}
		return nil, err
	}

	return &ActiveReservation{
		HasActive:        true,
		Reservation:      hold,
		RemainingSeconds: hold.RemainingSeconds(time.Now()),
	}, nil
}

// AvailableSlots composes the generator and the capacity counts: sweep, walk
// the date's schedule ranges, and annotate every window per active resource
// of the organiser, or a single no-resource pass when none exist. Read-only
// apart from the sweep.
func (s *service) AvailableSlots(ctx context.Context, appointmentTypeID uuid.UUID, date time.Time) (*DayAvailability, error) {
	if swept, err := s.repo.SweepExpired(ctx); err == nil {
		s.log.LogHoldsSwept(ctx, swept)
	}

	appointmentType, err := s.appointmentRepo.GetByID(ctx, appointmentTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("appointment type not found")
		}
		return nil, err
	}

	availability := &DayAvailability{
		AppointmentType: appointmentType.ToSummary(),
		Date:            date.Format("2006-01-02"),
		Slots:           []Slot{},
	}

	scheduleRows, err := s.scheduleRepo.GetByAppointmentTypeAndDay(ctx, appointmentTypeID, int(date.Weekday()))
	if err != nil {
		return nil, err
	}
	if len(scheduleRows) == 0 {
		return availability, nil
	}

	windows, err := GenerateWindows(date, scheduleRows, appointmentType.Duration())
	if err != nil {
		return nil, err
	}

	resourceRows, err := s.resourceRepo.GetActiveByOrganiser(ctx, appointmentType.OrganiserID)
	if err != nil {
		return nil, err
	}

	for _, window := range windows {
		if len(resourceRows) == 0 {
			slot, err := s.annotateWindow(ctx, UnscopedScope(appointmentTypeID), window, SingletonCapacity, nil, nil)
			if err != nil {
				return nil, err
			}
			availability.Slots = append(availability.Slots, slot)
			continue
		}
		for i := range resourceRows {
			resource := &resourceRows[i]
			slot, err := s.annotateWindow(ctx,
				ResourceScope(appointmentTypeID, resource.ID), window,
				resource.Capacity, &resource.ID, &resource.Name)
			if err != nil {
				return nil, err
			}
			availability.Slots = append(availability.Slots, slot)
		}
	}
	return availability, nil
}

func (s *service) annotateWindow(ctx context.Context, scope CapacityScope, window Window, totalCapacity int, resourceID *uuid.UUID, resourceName *string) (Slot, error) {
	activeHolds, err := s.repo.CountActiveHolds(ctx, scope, window.Start, window.End)
	if err != nil {
		return Slot{}, err
	}
	activeBookings, err := s.repo.CountActiveBookings(ctx, scope, window.Start, window.End)
	if err != nil {
		return Slot{}, err
	}

	remaining := totalCapacity - int(activeHolds) - int(activeBookings)
	available := remaining > 0
	if remaining < 0 {
		// Should be unreachable under the reserve-time locking discipline.
		remaining = 0
	}

	return Slot{
		StartTime:         window.Start,
		EndTime:           window.End,
		ResourceID:        resourceID,
		ResourceName:      resourceName,
		RemainingCapacity: remaining,
		TotalCapacity:     totalCapacity,
		Available:         available,
	}, nil
}

func (s *service) SweepExpired(ctx context.Context) (int64, error) {
	return s.repo.SweepExpired(ctx)
}

func (s *service) publishConfirmed(booking *bookings.Booking) {
	if s.publisher == nil {
		return
	}
	var resourceID *string
	if booking.ResourceID != nil {
		id := booking.ResourceID.String()
		resourceID = &id
	}
	event := notifications.BookingEvent{
		Type:              notifications.EventBookingConfirmed,
		BookingID:         booking.ID.String(),
		CustomerID:        booking.CustomerID.String(),
		AppointmentTypeID: booking.AppointmentTypeID.String(),
		ResourceID:        resourceID,
		StartTime:         booking.StartTime,
		EndTime:           booking.EndTime,
		OccurredAt:        time.Now().UTC(),
	}
	if err := s.publisher.Publish(event); err != nil {
		s.log.WithCustomerID(event.CustomerID).WithError(err).Warn("failed to publish booking confirmed event")
	}
}
