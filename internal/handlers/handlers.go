package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/harmonylane/lessonbook/internal/service"
	"github.com/harmonylane/lessonbook/pkg/auth"
	"github.com/harmonylane/lessonbook/pkg/logger"
)

type Handlers struct {
	Auth         service.AuthService
	Schedule     service.ScheduleService
	Bookings     service.BookingService
	Availability service.AvailabilityService
	Contact      service.ContactService

	jwtSecret string
}

func New(
	authSvc service.AuthService,
	scheduleSvc service.ScheduleService,
	bookingSvc service.BookingService,
	availabilitySvc service.AvailabilityService,
	contactSvc service.ContactService,
	jwtSecret string,
) *Handlers {
	return &Handlers{
		Auth:         authSvc,
		Schedule:     scheduleSvc,
		Bookings:     bookingSvc,
		Availability: availabilitySvc,
		Contact:      contactSvc,
		jwtSecret:    jwtSecret,
	}
}

type ctxKey string

const ctxClaims ctxKey = "claims"

// RequireJWT authenticates the bearer token and, when role is non-empty,
// requires that role. Admins pass any role check.
func (h *Handlers) RequireJWT(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := r.Header.Get("Authorization")
			if !strings.HasPrefix(authz, "Bearer ") {
				writeError(w, http.StatusUnauthorized, "missing bearer token", CodeUnauthorized)
				return
			}

			claims, err := auth.Parse(strings.TrimPrefix(authz, "Bearer "), h.jwtSecret)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid or expired token", CodeInvalidToken)
				return
			}
			if claims.Role == "refresh" {
				writeError(w, http.StatusUnauthorized, "refresh token not accepted here", CodeInvalidToken)
				return
			}
			if role != "" && claims.Role != role && claims.Role != "admin" {
				writeError(w, http.StatusForbidden, "insufficient role", CodeForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), ctxClaims, claims)
			ctx = context.WithValue(ctx, logger.UserIDKey, claims.Sub)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func getClaims(r *http.Request) *auth.Claims {
	v := r.Context().Value(ctxClaims)
	if v == nil {
		return nil
	}
	return v.(*auth.Claims)
}

func parsePagination(r *http.Request) (limit, offset int) {
	limit, offset = 20, 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}
