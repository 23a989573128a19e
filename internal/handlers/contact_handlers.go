package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/harmonylane/lessonbook/internal/domain"
)

func (h *Handlers) ContactRoutes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.submitContact)

	r.Group(func(pr chi.Router) {
		pr.Use(h.RequireJWT(domain.RoleAdmin))
		pr.Get("/", h.listContacts)
	})

	return r
}

func (h *Handlers) submitContact(w http.ResponseWriter, r *http.Request) {
	var req domain.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json", CodeInvalidInput)
		return
	}

	sub, err := h.Contact.Submit(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, "failed to record submission")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":     sub.ID,
		"status": "received",
	})
}

func (h *Handlers) listContacts(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	subs, err := h.Contact.List(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load submissions", CodeInternalError)
		return
	}
	if subs == nil {
		subs = []domain.ContactSubmission{}
	}
	writeJSON(w, http.StatusOK, subs)
}
