package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return BookingStatus(s), true
	default:
		return "", false
	}
}

// bookingTransitions is the full status state machine. Transitions are
// triggered only by the owning instructor; cancelled and completed are
// terminal.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCompleted},
	BookingCancelled: {},
	BookingCompleted: {},
}

func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// NextStatuses returns the actions available for a booking in status s,
// in a stable order, for rendering the per-booking action set.
func (s BookingStatus) NextStatuses() []BookingStatus {
	return bookingTransitions[s]
}

func (s BookingStatus) IsTerminal() bool {
	return len(bookingTransitions[s]) == 0
}

type Booking struct {
	ID            int64         `json:"id"`
	StudentID     int64         `json:"student_id"`
	InstructorID  int64         `json:"instructor_id"`
	LessonTypeID  int64         `json:"lesson_type_id"`
	ScheduledDate time.Time     `json:"scheduled_date"`
	ScheduledTime string        `json:"scheduled_time"`
	Status        BookingStatus `json:"status"`
	Notes         string        `json:"notes,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// BookingView is the instructor dashboard shape: a booking joined with
// student and lesson-type display fields.
type BookingView struct {
	Booking
	StudentName     string `json:"student_name"`
	StudentEmail    string `json:"student_email"`
	LessonTypeName  string `json:"lesson_type_name"`
	DurationMinutes int    `json:"duration_minutes"`
}

const ScheduledDateLayout = "2006-01-02"

type CreateBookingRequest struct {
	LessonTypeID  int64  `json:"lesson_type_id"`
	InstructorID  int64  `json:"instructor_id"`
	ScheduledDate string `json:"scheduled_date"`
	ScheduledTime string `json:"scheduled_time"`
	Notes         string `json:"notes,omitempty"`
}

// Validate enforces the submission contract: a lesson type, date and
// time must all be present before anything is sent to storage.
func (r *CreateBookingRequest) Validate() error {
	if r.LessonTypeID == 0 || r.ScheduledDate == "" || r.ScheduledTime == "" {
		return validationf("please select a lesson type, date, and time")
	}
	if r.InstructorID == 0 {
		return validationf("selected time is missing its instructor")
	}
	if _, err := time.Parse(ScheduledDateLayout, r.ScheduledDate); err != nil {
		return validationf("invalid scheduled_date: want YYYY-MM-DD")
	}
	if _, err := ParseClock(r.ScheduledTime); err != nil {
		return validationf("invalid scheduled_time: %v", err)
	}
	return nil
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status"`
}
