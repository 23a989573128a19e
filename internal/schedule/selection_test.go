package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectionDateChangeClearsTime(t *testing.T) {
	var s Selection

	s.SelectDate("2026-09-21")
	s.SelectTime(Mark{Time: "09:30", InstructorID: 4})
	assert.True(t, s.Complete())

	// Re-selecting the same date keeps the time.
	s.SelectDate("2026-09-21")
	assert.True(t, s.Complete())
	assert.Equal(t, "09:30", s.Time())

	// A different date drops the stale time and instructor.
	s.SelectDate("2026-09-22")
	assert.False(t, s.Complete())
	assert.Equal(t, "", s.Time())
	assert.Equal(t, int64(0), s.InstructorID())
	assert.Equal(t, "2026-09-22", s.Date())
}

func TestSelectionClear(t *testing.T) {
	var s Selection
	s.SelectDate("2026-09-21")
	s.SelectTime(Mark{Time: "10:00", InstructorID: 2})

	s.Clear()

	assert.False(t, s.Complete())
	assert.Equal(t, "", s.Date())
	assert.Equal(t, "", s.Time())
}

func TestSelectionIncomplete(t *testing.T) {
	var s Selection
	assert.False(t, s.Complete())

	s.SelectDate("2026-09-21")
	assert.False(t, s.Complete(), "date alone is not a complete selection")

	s.SelectTime(Mark{Time: "10:00", InstructorID: 2})
	assert.True(t, s.Complete())
}
