package schedule

import (
	"time"

	"github.com/harmonylane/lessonbook/internal/domain"
)

// Day is one cell of the booking calendar.
type Day struct {
	Date       string `json:"date"` // YYYY-MM-DD
	DayOfMonth int    `json:"day_of_month"`
	DayOfWeek  int    `json:"day_of_week"`
	Available  bool   `json:"available"`
	Past       bool   `json:"past"`
	Selectable bool   `json:"selectable"`
}

// WeekdaySet reports, per weekday, whether at least one active window
// exists on it.
func WeekdaySet(slots []domain.SlotWithInstructor) [7]bool {
	var set [7]bool
	for _, slot := range slots {
		if slot.Active && slot.DayOfWeek >= 0 && slot.DayOfWeek <= 6 {
			set[slot.DayOfWeek] = true
		}
	}
	return set
}

// MonthDays builds the calendar cells for a month. A day is selectable
// iff its weekday has availability and the date is not before today: a
// day counts as past only once it has fully elapsed, so the comparison
// is against today's midnight in today's location.
func MonthDays(year int, month time.Month, today time.Time, avail [7]bool) []Day {
	midnight := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())

	first := time.Date(year, month, 1, 0, 0, 0, 0, today.Location())
	daysInMonth := first.AddDate(0, 1, -1).Day()

	days := make([]Day, 0, daysInMonth)
	for d := 1; d <= daysInMonth; d++ {
		date := time.Date(year, month, d, 0, 0, 0, 0, today.Location())
		weekday := int(date.Weekday())
		past := date.Before(midnight)
		available := avail[weekday]

		days = append(days, Day{
			Date:       date.Format(domain.ScheduledDateLayout),
			DayOfMonth: d,
			DayOfWeek:  weekday,
			Available:  available,
			Past:       past,
			Selectable: available && !past,
		})
	}
	return days
}
