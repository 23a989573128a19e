package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/harmonylane/lessonbook/internal/domain"
	"github.com/harmonylane/lessonbook/internal/service"
)

func (h *Handlers) InstructorRoutes() chi.Router {
	r := chi.NewRouter()

	r.Use(h.RequireJWT(domain.RoleInstructor))

	r.Get("/bookings", h.instructorBookings)
	r.Patch("/bookings/{id}/status", h.updateBookingStatus)

	r.Get("/availability", h.listAvailability)
	r.Post("/availability", h.createAvailability)
	r.Delete("/availability/{id}", h.removeAvailability)

	return r
}

func (h *Handlers) instructorBookings(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)

	views, err := h.Bookings.ListForInstructor(r.Context(), claims.Sub)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load bookings", CodeInternalError)
		return
	}
	if views == nil {
		views = []domain.BookingView{}
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handlers) updateBookingStatus(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid booking id", CodeInvalidInput)
		return
	}

	var req domain.UpdateBookingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json", CodeInvalidInput)
		return
	}
	next, ok := domain.ParseBookingStatus(req.Status)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown status", CodeInvalidInput)
		return
	}

	booking, err := h.Bookings.UpdateStatus(r.Context(), claims.Sub, id, next)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			writeError(w, http.StatusNotFound, "booking not found", CodeNotFound)
		case errors.Is(err, service.ErrForbidden):
			writeError(w, http.StatusForbidden, "not your booking", CodeForbidden)
		case errors.Is(err, service.ErrInvalidTransition):
			writeError(w, http.StatusUnprocessableEntity, "status change not allowed", CodeInvalidTransition)
		case errors.Is(err, service.ErrConflict):
			writeError(w, http.StatusConflict, "booking changed concurrently, reload and retry", CodeConflict)
		default:
			writeError(w, http.StatusInternalServerError, "failed to update status", CodeInternalError)
		}
		return
	}

	writeJSON(w, http.StatusOK, booking)
}

func (h *Handlers) listAvailability(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)

	slots, err := h.Availability.ListMine(r.Context(), claims.Sub)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load availability", CodeInternalError)
		return
	}
	if slots == nil {
		slots = []domain.AvailabilitySlot{}
	}
	writeJSON(w, http.StatusOK, slots)
}

func (h *Handlers) createAvailability(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)

	var req domain.CreateSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json", CodeInvalidInput)
		return
	}

	slot, err := h.Availability.Create(r.Context(), claims.Sub, &req)
	if err != nil {
		writeDomainError(w, err, "failed to create availability")
		return
	}

	writeJSON(w, http.StatusCreated, slot)
}

func (h *Handlers) removeAvailability(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid slot id", CodeInvalidInput)
		return
	}

	if err := h.Availability.Remove(r.Context(), claims.Sub, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeError(w, http.StatusNotFound, "availability window not found", CodeNotFound)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to remove availability", CodeInternalError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
