package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/harmonylane/lessonbook/internal/domain"
	"github.com/harmonylane/lessonbook/internal/service"
)

func (h *Handlers) BookingRoutes() chi.Router {
	r := chi.NewRouter()

	r.Use(h.RequireJWT(""))
	r.Post("/", h.createBooking)
	r.Get("/", h.listMyBookings)

	return r
}

func (h *Handlers) createBooking(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)

	var req domain.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json", CodeInvalidInput)
		return
	}

	// The token already carries the student's display fields, so no
	// profile load is needed to attribute the booking.
	student := &domain.User{
		ID:       claims.Sub,
		Email:    claims.Email,
		FullName: claims.Name,
		Role:     claims.Role,
	}

	booking, err := h.Bookings.Create(r.Context(), student, &req)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeError(w, http.StatusNotFound, "lesson type or instructor not found", CodeNotFound)
			return
		}
		writeDomainError(w, err, "failed to create booking")
		return
	}

	writeJSON(w, http.StatusCreated, booking)
}

func (h *Handlers) listMyBookings(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)

	views, err := h.Bookings.ListForStudent(r.Context(), claims.Sub)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load bookings", CodeInternalError)
		return
	}
	if views == nil {
		views = []domain.BookingView{}
	}
	writeJSON(w, http.StatusOK, views)
}
