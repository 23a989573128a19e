package domain

import "testing"

func TestBookingStatusTransitions(t *testing.T) {
	tests := []struct {
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{BookingPending, BookingConfirmed, true},
		{BookingPending, BookingCancelled, true},
		{BookingPending, BookingCompleted, false},
		{BookingConfirmed, BookingCompleted, true},
		{BookingConfirmed, BookingCancelled, false},
		{BookingConfirmed, BookingPending, false},
		{BookingCancelled, BookingPending, false},
		{BookingCancelled, BookingConfirmed, false},
		{BookingCompleted, BookingConfirmed, false},
		{BookingPending, BookingPending, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.allowed {
			t.Errorf("%s -> %s: got %v, want %v", tt.from, tt.to, got, tt.allowed)
		}
	}
}

func TestBookingStatusTerminal(t *testing.T) {
	if BookingPending.IsTerminal() || BookingConfirmed.IsTerminal() {
		t.Error("pending and confirmed must not be terminal")
	}
	if !BookingCancelled.IsTerminal() || !BookingCompleted.IsTerminal() {
		t.Error("cancelled and completed must be terminal")
	}
}

func TestNextStatuses(t *testing.T) {
	next := BookingPending.NextStatuses()
	if len(next) != 2 || next[0] != BookingConfirmed || next[1] != BookingCancelled {
		t.Errorf("pending actions: got %v", next)
	}
	if len(BookingCompleted.NextStatuses()) != 0 {
		t.Error("completed must offer no actions")
	}
}

func TestParseBookingStatus(t *testing.T) {
	if _, ok := ParseBookingStatus("confirmed"); !ok {
		t.Error("confirmed should parse")
	}
	if _, ok := ParseBookingStatus("CONFIRMED"); ok {
		t.Error("status parsing is case sensitive")
	}
	if _, ok := ParseBookingStatus("done"); ok {
		t.Error("unknown status should not parse")
	}
}

func TestCreateBookingRequestValidate(t *testing.T) {
	valid := CreateBookingRequest{
		LessonTypeID:  1,
		InstructorID:  2,
		ScheduledDate: "2026-10-05",
		ScheduledTime: "09:30",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(r *CreateBookingRequest)
	}{
		{"missing lesson type", func(r *CreateBookingRequest) { r.LessonTypeID = 0 }},
		{"missing date", func(r *CreateBookingRequest) { r.ScheduledDate = "" }},
		{"missing time", func(r *CreateBookingRequest) { r.ScheduledTime = "" }},
		{"missing instructor", func(r *CreateBookingRequest) { r.InstructorID = 0 }},
		{"bad date format", func(r *CreateBookingRequest) { r.ScheduledDate = "05/10/2026" }},
		{"bad time format", func(r *CreateBookingRequest) { r.ScheduledTime = "9:30am" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			if err := req.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
