package service

import (
	"context"

	"github.com/harmonylane/lessonbook/internal/cache"
	"github.com/harmonylane/lessonbook/internal/domain"
	"github.com/harmonylane/lessonbook/internal/repository"
	"github.com/harmonylane/lessonbook/pkg/logger"
)

type AvailabilityService interface {
	ListMine(ctx context.Context, instructorID int64) ([]domain.AvailabilitySlot, error)
	Create(ctx context.Context, instructorID int64, req *domain.CreateSlotRequest) (*domain.AvailabilitySlot, error)
	Remove(ctx context.Context, instructorID, slotID int64) error
}

type availabilityService struct {
	availability repository.AvailabilityRepository
	cache        *cache.ScheduleCache
}

func NewAvailabilityService(availability repository.AvailabilityRepository, c *cache.ScheduleCache) AvailabilityService {
	return &availabilityService{availability: availability, cache: c}
}

func (s *availabilityService) ListMine(ctx context.Context, instructorID int64) ([]domain.AvailabilitySlot, error) {
	return s.availability.ListByInstructor(ctx, instructorID)
}

func (s *availabilityService) Create(ctx context.Context, instructorID int64, req *domain.CreateSlotRequest) (*domain.AvailabilitySlot, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	slot, err := s.availability.Create(ctx, instructorID, req)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return slot, nil
}

func (s *availabilityService) Remove(ctx context.Context, instructorID, slotID int64) error {
	ok, err := s.availability.Deactivate(ctx, slotID, instructorID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}

	s.invalidate(ctx)
	return nil
}

func (s *availabilityService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateSlots(ctx); err != nil {
		logger.WarnContext(ctx, "slot cache invalidation failed", "error", err)
	}
}
