package schedule

// Selection is the single mutable (date, time, instructor) choice a
// booking view holds. Picking a new date drops any previously chosen
// time, since the old time belonged to the old date's marks.
type Selection struct {
	date         string
	time         string
	instructorID int64
}

func (s *Selection) SelectDate(date string) {
	if s.date != date {
		s.time = ""
		s.instructorID = 0
	}
	s.date = date
}

func (s *Selection) SelectTime(mark Mark) {
	s.time = mark.Time
	s.instructorID = mark.InstructorID
}

func (s *Selection) Clear() {
	*s = Selection{}
}

// Complete reports whether a date and a time (with its instructor) have
// both been chosen.
func (s *Selection) Complete() bool {
	return s.date != "" && s.time != "" && s.instructorID != 0
}

func (s *Selection) Date() string        { return s.date }
func (s *Selection) Time() string        { return s.time }
func (s *Selection) InstructorID() int64 { return s.instructorID }
