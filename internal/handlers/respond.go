package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/harmonylane/lessonbook/internal/domain"
	"github.com/harmonylane/lessonbook/pkg/logger"
)

// ErrorResponse is the JSON error shape every endpoint returns.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Common error codes
const (
	CodeInvalidInput      = "INVALID_INPUT"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeNotFound          = "NOT_FOUND"
	CodeConflict          = "CONFLICT"
	CodeInternalError     = "INTERNAL_ERROR"
	CodeInvalidToken      = "INVALID_TOKEN"
	CodeEmailExists       = "EMAIL_EXISTS"
	CodeInvalidTransition = "INVALID_TRANSITION"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// writeDomainError maps validation failures to a 400 with the message
// intact; anything else is a storage or dependency failure and gets an
// opaque 500 so internals never reach the client.
func writeDomainError(w http.ResponseWriter, err error, internalMessage string) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		writeError(w, http.StatusBadRequest, verr.Error(), CodeInvalidInput)
		return
	}
	writeError(w, http.StatusInternalServerError, internalMessage, CodeInternalError)
}
