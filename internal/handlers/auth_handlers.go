package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/harmonylane/lessonbook/internal/domain"
	"github.com/harmonylane/lessonbook/internal/service"
	"github.com/harmonylane/lessonbook/pkg/logger"
)

func (h *Handlers) AuthRoutes() chi.Router {
	r := chi.NewRouter()

	r.Post("/register", h.register)
	r.Post("/login", h.login)
	r.Post("/refresh", h.refresh)
	r.Post("/verify-email", h.verifyEmail)
	r.Post("/resend-verification", h.resendVerification)
	r.Post("/password-reset", h.requestPasswordReset)
	r.Post("/password-reset/confirm", h.confirmPasswordReset)

	r.Group(func(pr chi.Router) {
		pr.Use(h.RequireJWT(""))
		pr.Post("/logout", h.logout)
		pr.Get("/me", h.me)
	})

	return r
}

func (h *Handlers) register(w http.ResponseWriter, r *http.Request) {
	var req domain.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json", CodeInvalidInput)
		return
	}

	info, err := h.Auth.Register(r.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			writeError(w, http.StatusConflict, "email already registered", CodeEmailExists)
			return
		}
		writeDomainError(w, err, "registration failed")
		return
	}

	writeJSON(w, http.StatusCreated, info)
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var req domain.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json", CodeInvalidInput)
		return
	}

	resp, err := h.Auth.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid email or password", CodeUnauthorized)
			return
		}
		writeDomainError(w, err, "sign in failed")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) logout(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)
	if err := h.Auth.Logout(r.Context(), claims); err != nil {
		logger.ErrorContext(r.Context(), "logout failed", "error", err)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		writeError(w, http.StatusBadRequest, "refresh_token is required", CodeInvalidInput)
		return
	}

	resp, err := h.Auth.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid or expired refresh token", CodeInvalidToken)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) me(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)
	info, err := h.Auth.Me(r.Context(), claims.Sub)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found", CodeNotFound)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load profile", CodeInternalError)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (h *Handlers) verifyEmail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		writeError(w, http.StatusBadRequest, "token is required", CodeInvalidInput)
		return
	}

	if err := h.Auth.VerifyEmail(r.Context(), req.Token); err != nil {
		if errors.Is(err, service.ErrTokenInvalid) {
			writeError(w, http.StatusBadRequest, "token is invalid or expired", CodeInvalidToken)
			return
		}
		writeError(w, http.StatusInternalServerError, "verification failed", CodeInternalError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "verified"})
}

func (h *Handlers) resendVerification(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !domain.IsValidEmail(req.Email) {
		writeError(w, http.StatusBadRequest, "a valid email is required", CodeInvalidInput)
		return
	}

	if err := h.Auth.ResendVerification(r.Context(), req.Email); err != nil {
		logger.ErrorContext(r.Context(), "resend verification failed", "error", err)
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "sent"})
}

func (h *Handlers) requestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req domain.PasswordResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !domain.IsValidEmail(req.Email) {
		writeError(w, http.StatusBadRequest, "a valid email is required", CodeInvalidInput)
		return
	}

	if err := h.Auth.RequestPasswordReset(r.Context(), req.Email); err != nil {
		logger.ErrorContext(r.Context(), "password reset request failed", "error", err)
	}

	// Same answer whether or not the address exists.
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "sent"})
}

func (h *Handlers) confirmPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req domain.PasswordResetConfirm
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json", CodeInvalidInput)
		return
	}

	if err := h.Auth.ConfirmPasswordReset(r.Context(), &req); err != nil {
		if errors.Is(err, service.ErrTokenInvalid) {
			writeError(w, http.StatusBadRequest, "token is invalid or expired", CodeInvalidToken)
			return
		}
		writeDomainError(w, err, "password update failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "password updated"})
}
