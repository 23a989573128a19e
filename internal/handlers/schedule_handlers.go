package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/harmonylane/lessonbook/internal/domain"
)

func (h *Handlers) ScheduleRoutes() chi.Router {
	r := chi.NewRouter()

	r.Get("/lesson-types", h.lessonTypes)
	r.Get("/slots", h.slots)
	r.Get("/calendar", h.calendar)
	r.Get("/days/{date}/times", h.dayTimes)

	return r
}

func (h *Handlers) lessonTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.Schedule.LessonTypes(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load lesson types", CodeInternalError)
		return
	}
	if types == nil {
		types = []domain.LessonType{}
	}
	writeJSON(w, http.StatusOK, types)
}

func (h *Handlers) slots(w http.ResponseWriter, r *http.Request) {
	slots, err := h.Schedule.Slots(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load availability", CodeInternalError)
		return
	}
	if slots == nil {
		slots = []domain.SlotWithInstructor{}
	}
	writeJSON(w, http.StatusOK, slots)
}

// calendar returns the day cells for ?year=&month=, defaulting to the
// current month.
func (h *Handlers) calendar(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	year, month := now.Year(), int(now.Month())

	if v := r.URL.Query().Get("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 2000 || n > 2100 {
			writeError(w, http.StatusBadRequest, "invalid year", CodeInvalidInput)
			return
		}
		year = n
	}
	if v := r.URL.Query().Get("month"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 12 {
			writeError(w, http.StatusBadRequest, "invalid month", CodeInvalidInput)
			return
		}
		month = n
	}

	days, err := h.Schedule.Calendar(r.Context(), year, time.Month(month))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build calendar", CodeInternalError)
		return
	}
	writeJSON(w, http.StatusOK, days)
}

func (h *Handlers) dayTimes(w http.ResponseWriter, r *http.Request) {
	date, err := time.ParseInLocation(domain.ScheduledDateLayout, chi.URLParam(r, "date"), time.Local)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date: want YYYY-MM-DD", CodeInvalidInput)
		return
	}

	marks, err := h.Schedule.DayTimes(r.Context(), date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load times", CodeInternalError)
		return
	}
	writeJSON(w, http.StatusOK, marks)
}
