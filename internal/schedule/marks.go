// Package schedule is the pure scheduling view-model: it turns a set of
// recurring availability windows into calendar days and bookable time
// marks without touching storage or transport.
package schedule

import (
	"iter"
	"time"

	"github.com/harmonylane/lessonbook/internal/domain"
)

// MarkIntervalMinutes is the fixed size of one bookable increment.
const MarkIntervalMinutes = 30

// Mark is one bookable increment generated from a slot window. It keeps
// the owning instructor so a later selection attributes the booking to
// the right person even when windows from several instructors overlap.
type Mark struct {
	Time         string `json:"time"`
	InstructorID int64  `json:"instructor_id"`
}

// WindowMarks generates the marks of a single [start,end) window as a
// lazy, finite, restartable sequence: every range over the returned
// Seq walks the window again from start. A window shorter than one
// interval yields nothing; end itself is never yielded.
func WindowMarks(startMinute, endMinute int, instructorID int64) iter.Seq[Mark] {
	return func(yield func(Mark) bool) {
		for m := startMinute; m+MarkIntervalMinutes <= endMinute; m += MarkIntervalMinutes {
			if !yield(Mark{Time: domain.FormatClock(m), InstructorID: instructorID}) {
				return
			}
		}
	}
}

// DayMarks expands every active window matching the weekday of date, in
// the order the windows were loaded (day_of_week, start_time). Windows
// are not merged or deduplicated: overlapping windows each contribute
// their own marks.
func DayMarks(slots []domain.SlotWithInstructor, date time.Time) []Mark {
	weekday := int(date.Weekday())

	var marks []Mark
	for _, slot := range slots {
		if !slot.Active || slot.DayOfWeek != weekday {
			continue
		}
		start, err := domain.ParseClock(slot.StartTime)
		if err != nil {
			continue
		}
		end, err := domain.ParseClock(slot.EndTime)
		if err != nil {
			continue
		}
		for mark := range WindowMarks(start, end, slot.InstructorID) {
			marks = append(marks, mark)
		}
	}
	return marks
}
