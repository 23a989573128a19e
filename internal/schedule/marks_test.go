package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harmonylane/lessonbook/internal/domain"
)

func slot(instructorID int64, day int, start, end string) domain.SlotWithInstructor {
	return domain.SlotWithInstructor{
		AvailabilitySlot: domain.AvailabilitySlot{
			ID:           1,
			InstructorID: instructorID,
			DayOfWeek:    day,
			StartTime:    start,
			EndTime:      end,
			Active:       true,
		},
	}
}

func TestWindowMarks(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  []string
	}{
		{"ninety minute window", "09:00", "10:30", []string{"09:00", "09:30", "10:00"}},
		{"single interval", "14:00", "14:30", []string{"14:00"}},
		{"sub-interval window yields nothing", "09:00", "09:20", nil},
		{"zero-length window", "09:00", "09:00", nil},
		{"inverted window", "10:00", "09:00", nil},
		{"uneven end is floored", "09:00", "10:20", []string{"09:00", "09:30"}},
		{"full evening", "17:00", "19:00", []string{"17:00", "17:30", "18:00", "18:30"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, err := domain.ParseClock(tt.start)
			require.NoError(t, err)
			end, err := domain.ParseClock(tt.end)
			require.NoError(t, err)

			var got []string
			for m := range WindowMarks(start, end, 7) {
				assert.Equal(t, int64(7), m.InstructorID)
				got = append(got, m.Time)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWindowMarksRestartable(t *testing.T) {
	seq := WindowMarks(9*60, 11*60, 1)

	count := func() int {
		n := 0
		for range seq {
			n++
		}
		return n
	}

	// Ranging twice over the same Seq walks the window twice.
	assert.Equal(t, 4, count())
	assert.Equal(t, 4, count())
}

func TestWindowMarksEarlyBreak(t *testing.T) {
	var got []string
	for m := range WindowMarks(9*60, 17*60, 1) {
		got = append(got, m.Time)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"09:00", "09:30"}, got)
}

func TestDayMarks(t *testing.T) {
	// 2026-09-07 is a Monday.
	monday := time.Date(2026, time.September, 7, 0, 0, 0, 0, time.Local)

	slots := []domain.SlotWithInstructor{
		slot(1, 1, "09:00", "10:30"),
		slot(2, 1, "10:00", "11:00"), // overlaps instructor 1
		slot(3, 2, "09:00", "17:00"), // Tuesday, filtered out
	}

	marks := DayMarks(slots, monday)

	want := []Mark{
		{Time: "09:00", InstructorID: 1},
		{Time: "09:30", InstructorID: 1},
		{Time: "10:00", InstructorID: 1},
		{Time: "10:00", InstructorID: 2},
		{Time: "10:30", InstructorID: 2},
	}
	// Overlapping windows each contribute their own marks; 10:00 appears
	// once per instructor.
	assert.Equal(t, want, marks)
}

func TestDayMarksSkipsInactiveAndMalformed(t *testing.T) {
	monday := time.Date(2026, time.September, 7, 0, 0, 0, 0, time.Local)

	inactive := slot(1, 1, "09:00", "12:00")
	inactive.Active = false
	malformed := slot(2, 1, "9am", "noon")

	marks := DayMarks([]domain.SlotWithInstructor{inactive, malformed}, monday)
	assert.Empty(t, marks)
}
