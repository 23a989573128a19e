package service

import (
	"context"
	"time"

	"github.com/harmonylane/lessonbook/internal/cache"
	"github.com/harmonylane/lessonbook/internal/domain"
	"github.com/harmonylane/lessonbook/internal/repository"
	"github.com/harmonylane/lessonbook/internal/schedule"
	"github.com/harmonylane/lessonbook/pkg/logger"
)

// ScheduleService serves the booking page's read models: lesson types,
// the month calendar, and the bookable times of a day. Reads go through
// the Redis snapshot; a miss falls back to Postgres and refills it.
type ScheduleService interface {
	LessonTypes(ctx context.Context) ([]domain.LessonType, error)
	Slots(ctx context.Context) ([]domain.SlotWithInstructor, error)
	Calendar(ctx context.Context, year int, month time.Month) ([]schedule.Day, error)
	DayTimes(ctx context.Context, date time.Time) ([]schedule.Mark, error)
}

type scheduleService struct {
	lessonTypes  repository.LessonTypeRepository
	availability repository.AvailabilityRepository
	cache        *cache.ScheduleCache
	now          func() time.Time
}

func NewScheduleService(
	lessonTypes repository.LessonTypeRepository,
	availability repository.AvailabilityRepository,
	c *cache.ScheduleCache,
) ScheduleService {
	return &scheduleService{
		lessonTypes:  lessonTypes,
		availability: availability,
		cache:        c,
		now:          time.Now,
	}
}

func (s *scheduleService) LessonTypes(ctx context.Context) ([]domain.LessonType, error) {
	if s.cache != nil {
		types, ok, err := s.cache.GetLessonTypes(ctx)
		if err != nil {
			logger.WarnContext(ctx, "lesson type cache read failed", "error", err)
		}
		if ok {
			return types, nil
		}
	}

	types, err := s.lessonTypes.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.ReplaceLessonTypes(ctx, types); err != nil {
			logger.WarnContext(ctx, "lesson type cache write failed", "error", err)
		}
	}
	return types, nil
}

// Slots returns the active windows with their instructor display
// fields, ordered by (day_of_week, start_time).
func (s *scheduleService) Slots(ctx context.Context) ([]domain.SlotWithInstructor, error) {
	return s.activeSlots(ctx)
}

func (s *scheduleService) Calendar(ctx context.Context, year int, month time.Month) ([]schedule.Day, error) {
	slots, err := s.activeSlots(ctx)
	if err != nil {
		return nil, err
	}
	return schedule.MonthDays(year, month, s.now(), schedule.WeekdaySet(slots)), nil
}

func (s *scheduleService) DayTimes(ctx context.Context, date time.Time) ([]schedule.Mark, error) {
	slots, err := s.activeSlots(ctx)
	if err != nil {
		return nil, err
	}
	return schedule.DayMarks(slots, date), nil
}

// activeSlots is the cached load behind both the calendar and the
// per-day times. Cache trouble is logged and degraded around, never
// surfaced to the caller.
func (s *scheduleService) activeSlots(ctx context.Context) ([]domain.SlotWithInstructor, error) {
	if s.cache != nil {
		slots, ok, err := s.cache.GetSlots(ctx)
		if err != nil {
			logger.WarnContext(ctx, "slot cache read failed", "error", err)
		}
		if ok {
			return slots, nil
		}
	}

	slots, err := s.availability.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.ReplaceSlots(ctx, slots); err != nil {
			logger.WarnContext(ctx, "slot cache write failed", "error", err)
		}
	}
	return slots, nil
}
