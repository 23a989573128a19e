package domain

import "time"

// AvailabilitySlot is an instructor-declared recurring weekly window of
// bookable time. Day of week follows time.Weekday numbering: 0=Sunday.
// Slots are soft-deleted: the active flag is cleared, the row stays.
type AvailabilitySlot struct {
	ID           int64     `json:"id"`
	InstructorID int64     `json:"instructor_id"`
	DayOfWeek    int       `json:"day_of_week"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

// SlotWithInstructor carries the instructor display fields the booking
// page shows next to each generated time.
type SlotWithInstructor struct {
	AvailabilitySlot
	InstructorName  string `json:"instructor_name"`
	InstructorEmail string `json:"instructor_email"`
}

type CreateSlotRequest struct {
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func (r *CreateSlotRequest) Validate() error {
	if r.DayOfWeek < 0 || r.DayOfWeek > 6 {
		return validationf("day_of_week must be between 0 (Sunday) and 6 (Saturday)")
	}
	start, err := ParseClock(r.StartTime)
	if err != nil {
		return validationf("invalid start_time: %v", err)
	}
	end, err := ParseClock(r.EndTime)
	if err != nil {
		return validationf("invalid end_time: %v", err)
	}
	if start >= end {
		return validationf("end time must be after start time")
	}
	// Overlap with existing windows is deliberately not checked;
	// overlapping windows are allowed and each surfaces its own times.
	return nil
}
