package bookings

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bookly/internal/notifications"
	"bookly/internal/shared/apperrors"
	"bookly/pkg/logger"
)

type Service interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetByCustomer(ctx context.Context, customerID uuid.UUID, query BookingListQuery) ([]Booking, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateBookingRequest) (*Booking, error)
	Cancel(ctx context.Context, id uuid.UUID) (*Booking, error)
}

type service struct {
	repo      Repository
	publisher notifications.Publisher
	log       *logger.Logger
}

func NewService(repo Repository, publisher notifications.Publisher) Service {
	return &service{
		repo:      repo,
		publisher: publisher,
		log:       logger.GetDefault(),
	}
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("booking not found")
		}
		return nil, err
	}
	return booking, nil
}

func (s *service) GetByCustomer(ctx context.Context, customerID uuid.UUID, query BookingListQuery) ([]Booking, int64, error) {
	if query.Status != nil && !query.Status.IsValid() {
		return nil, 0, apperrors.Validationf("invalid booking status: %s", *query.Status)
	}
	return s.repo.GetByCustomer(ctx, customerID, query)
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateBookingRequest) (*Booking, error) {
	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		next := Status(*req.Status)
		if !next.IsValid() {
			return nil, apperrors.Validationf("invalid booking status: %s", *req.Status)
		}
		if next != booking.Status {
			if !booking.Status.CanTransitionTo(next) {
				return nil, apperrors.Validationf("cannot transition booking from %s to %s", booking.Status, next)
			}
			booking.Status = next
			if next == StatusCancelled {
				now := time.Now()
				booking.CancelledAt = &now
			}
		}
	}

	if req.PaymentStatus != nil {
		next := PaymentStatus(*req.PaymentStatus)
		if !next.IsValid() {
			return nil, apperrors.Validationf("invalid payment status: %s", *req.PaymentStatus)
		}
		booking.PaymentStatus = next
	}

	if req.PaymentReference != nil {
		booking.PaymentReference = req.PaymentReference
	}

	if err := s.repo.Update(ctx, booking); err != nil {
		return nil, err
	}

	if booking.Status == StatusCancelled {
		s.publishCancelled(booking)
	}

	return booking, nil
}

func (s *service) Cancel(ctx context.Context, id uuid.UUID) (*Booking, error) {
	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !booking.Status.CanTransitionTo(StatusCancelled) {
		return nil, apperrors.Validationf("cannot cancel booking in status %s", booking.Status)
	}

	booking.Cancel()
	if err := s.repo.Update(ctx, booking); err != nil {
		return nil, err
	}

	s.log.LogBookingCancelled(ctx, booking.ID.String(), booking.CustomerID.String())
	s.publishCancelled(booking)

	return booking, nil
}

func (s *service) publishCancelled(booking *Booking) {
	if s.publisher == nil {
		return
	}
	event := notifications.BookingEvent{
		Type:              notifications.EventBookingCancelled,
		BookingID:         booking.ID.String(),
		CustomerID:        booking.CustomerID.String(),
		AppointmentTypeID: booking.AppointmentTypeID.String(),
		StartTime:         booking.StartTime,
		EndTime:           booking.EndTime,
		OccurredAt:        time.Now().UTC(),
	}
	if err := s.publisher.Publish(event); err != nil {
		s.log.WithCustomerID(event.CustomerID).WithError(err).Warn("failed to publish booking cancelled event")
	}
}
