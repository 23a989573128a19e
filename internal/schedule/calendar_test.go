package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harmonylane/lessonbook/internal/domain"
)

func TestWeekdaySet(t *testing.T) {
	slots := []domain.SlotWithInstructor{
		slot(1, 1, "09:00", "12:00"),
		slot(2, 3, "14:00", "17:00"),
	}
	inactive := slot(3, 5, "09:00", "12:00")
	inactive.Active = false
	slots = append(slots, inactive)

	set := WeekdaySet(slots)

	assert.Equal(t, [7]bool{false, true, false, true, false, false, false}, set)
}

func TestMonthDays(t *testing.T) {
	// Pretend today is Tuesday 2026-09-15, mid-afternoon.
	today := time.Date(2026, time.September, 15, 15, 30, 0, 0, time.Local)
	avail := [7]bool{}
	avail[1] = true // Mondays
	avail[2] = true // Tuesdays

	days := MonthDays(2026, time.September, today, avail)
	require.Len(t, days, 30)

	byDate := map[string]Day{}
	for _, d := range days {
		byDate[d.Date] = d
	}

	// A past Monday: available but gone.
	past := byDate["2026-09-07"]
	assert.True(t, past.Available)
	assert.True(t, past.Past)
	assert.False(t, past.Selectable)

	// Today is selectable until midnight, whatever the hour.
	now := byDate["2026-09-15"]
	assert.False(t, now.Past)
	assert.True(t, now.Selectable)

	// A future Monday is selectable.
	future := byDate["2026-09-21"]
	assert.True(t, future.Selectable)

	// A future Wednesday has no availability.
	wednesday := byDate["2026-09-16"]
	assert.False(t, wednesday.Past)
	assert.False(t, wednesday.Available)
	assert.False(t, wednesday.Selectable)
}

func TestMonthDaysFebruary(t *testing.T) {
	today := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.Local)

	days := MonthDays(2026, time.February, today, [7]bool{})
	assert.Len(t, days, 28)

	leap := MonthDays(2028, time.February, today, [7]bool{})
	assert.Len(t, leap, 29)
}
