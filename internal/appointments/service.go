package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bookly/internal/questions"
	"bookly/internal/schedules"
	"bookly/internal/shared/apperrors"
	"bookly/internal/shared/constants"
	"bookly/pkg/cache"
)

// Service exposes the customer-facing read surface for appointment types.
// Creation and editing belong to organiser tooling.
type Service interface {
	// Service dependency injection
	SetCacheService(cacheService cache.Service)
	GetPublished(ctx context.Context) ([]AppointmentType, error)
	GetDetail(ctx context.Context, id uuid.UUID) (*AppointmentTypeDetail, error)
}

type service struct {
	repo         Repository
	scheduleRepo schedules.Repository
	questionRepo questions.Repository
	cacheService cache.Service
}

func NewService(repo Repository, scheduleRepo schedules.Repository, questionRepo questions.Repository) Service {
	return &service{
		repo:         repo,
		scheduleRepo: scheduleRepo,
		questionRepo: questionRepo,
	}
}

// SetCacheService wires the optional Redis read cache.
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) GetPublished(ctx context.Context) ([]AppointmentType, error) {
	if s.cacheService != nil {
		var cached []AppointmentType
		err := s.cacheService.GetOrSet(ctx, constants.CACHE_KEY_APPOINTMENT_TYPES_PUBLISHED, constants.TTL_APPOINTMENT_TYPES,
			func() (interface{}, error) {
				return s.repo.GetAllPublished(ctx)
			}, &cached)
		if err == nil {
			return cached, nil
		}
		// Cache path failed; fall back to the database.
	}

	return s.repo.GetAllPublished(ctx)
}

func (s *service) GetDetail(ctx context.Context, id uuid.UUID) (*AppointmentTypeDetail, error) {
	if s.cacheService != nil {
		var cached AppointmentTypeDetail
		key := constants.BuildAppointmentTypeDetailKey(id.String())
		err := s.cacheService.GetOrSet(ctx, key, constants.TTL_APPOINTMENT_TYPES,
			func() (interface{}, error) {
				return s.loadDetail(ctx, id)
			}, &cached)
		if err == nil {
			return &cached, nil
		}
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}

	return s.loadDetail(ctx, id)
}

func (s *service) loadDetail(ctx context.Context, id uuid.UUID) (*AppointmentTypeDetail, error) {
	at, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("appointment type not found")
		}
		return nil, fmt.Errorf("failed to get appointment type: %w", err)
	}

	scheduleRows, err := s.scheduleRepo.GetByAppointmentType(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get schedules: %w", err)
	}

	questionRows, err := s.questionRepo.GetByAppointmentType(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get questions: %w", err)
	}

	return &AppointmentTypeDetail{
		AppointmentType: *at,
		Schedules:       scheduleRows,
		Questions:       questionRows,
	}, nil
}
