package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/harmonylane/lessonbook/internal/cache"
	"github.com/harmonylane/lessonbook/internal/domain"
)

type mockAvailabilityRepo struct {
	slots     []domain.SlotWithInstructor
	listCalls int
}

func (m *mockAvailabilityRepo) ListActive(context.Context) ([]domain.SlotWithInstructor, error) {
	m.listCalls++
	return m.slots, nil
}

func (m *mockAvailabilityRepo) ListByInstructor(context.Context, int64) ([]domain.AvailabilitySlot, error) {
	return nil, nil
}

func (m *mockAvailabilityRepo) Create(context.Context, int64, *domain.CreateSlotRequest) (*domain.AvailabilitySlot, error) {
	return nil, nil
}

func (m *mockAvailabilityRepo) Deactivate(context.Context, int64, int64) (bool, error) {
	return false, nil
}

func activeSlot(instructorID int64, day int, start, end string) domain.SlotWithInstructor {
	return domain.SlotWithInstructor{
		AvailabilitySlot: domain.AvailabilitySlot{
			InstructorID: instructorID,
			DayOfWeek:    day,
			StartTime:    start,
			EndTime:      end,
			Active:       true,
		},
	}
}

func newScheduleFixture(t *testing.T, slots []domain.SlotWithInstructor) (ScheduleService, *mockAvailabilityRepo, *cache.ScheduleCache) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	c := cache.NewScheduleCache(client, time.Minute)

	availability := &mockAvailabilityRepo{slots: slots}
	lessonTypes := &mockLessonTypeRepo{types: map[int64]*domain.LessonType{}}

	return NewScheduleService(lessonTypes, availability, c), availability, c
}

func TestDayTimes_ExpandsWindows(t *testing.T) {
	svc, _, _ := newScheduleFixture(t, []domain.SlotWithInstructor{
		activeSlot(1, 1, "09:00", "10:30"),
	})

	// 2026-09-07 is a Monday.
	monday := time.Date(2026, time.September, 7, 0, 0, 0, 0, time.Local)
	marks, err := svc.DayTimes(context.Background(), monday)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"09:00", "09:30", "10:00"}
	if len(marks) != len(want) {
		t.Fatalf("got %d marks, want %d", len(marks), len(want))
	}
	for i, m := range marks {
		if m.Time != want[i] {
			t.Errorf("mark %d = %s, want %s", i, m.Time, want[i])
		}
	}
}

func TestDayTimes_SecondReadServedFromCache(t *testing.T) {
	svc, repo, _ := newScheduleFixture(t, []domain.SlotWithInstructor{
		activeSlot(1, 1, "09:00", "12:00"),
	})
	monday := time.Date(2026, time.September, 7, 0, 0, 0, 0, time.Local)

	if _, err := svc.DayTimes(context.Background(), monday); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.DayTimes(context.Background(), monday); err != nil {
		t.Fatal(err)
	}

	if repo.listCalls != 1 {
		t.Errorf("storage hit %d times, want 1 (second read cached)", repo.listCalls)
	}
}

func TestDayTimes_InvalidationForcesReload(t *testing.T) {
	svc, repo, c := newScheduleFixture(t, []domain.SlotWithInstructor{
		activeSlot(1, 1, "09:00", "12:00"),
	})
	monday := time.Date(2026, time.September, 7, 0, 0, 0, 0, time.Local)
	ctx := context.Background()

	if _, err := svc.DayTimes(ctx, monday); err != nil {
		t.Fatal(err)
	}
	if err := c.InvalidateSlots(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.DayTimes(ctx, monday); err != nil {
		t.Fatal(err)
	}

	if repo.listCalls != 2 {
		t.Errorf("storage hit %d times, want 2 after invalidation", repo.listCalls)
	}
}

func TestCalendar_SelectableDays(t *testing.T) {
	svc, _, _ := newScheduleFixture(t, []domain.SlotWithInstructor{
		activeSlot(1, 1, "09:00", "12:00"), // Mondays only
	})

	days, err := svc.Calendar(context.Background(), 2100, time.January)
	if err != nil {
		t.Fatal(err)
	}

	for _, d := range days {
		wantSelectable := d.DayOfWeek == 1
		if d.Selectable != wantSelectable {
			t.Errorf("%s (weekday %d): selectable = %v", d.Date, d.DayOfWeek, d.Selectable)
		}
	}
}
