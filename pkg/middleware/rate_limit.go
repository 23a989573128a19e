package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RateLimitConfig defines rate limiting parameters
type RateLimitConfig struct {
	Requests int                            // Max requests per window
	Window   time.Duration                  // Time window duration
	KeyFunc  func(r *http.Request) []string // Function to generate rate limit keys
	SkipFunc func(r *http.Request) bool     // Function to skip rate limiting
}

// limitStore records one request against a key and reports the count
// accumulated in the current fixed window. A window opens at the first
// request and resets once it is older than the configured duration.
type limitStore interface {
	bump(ctx context.Context, key string, now time.Time) (int, error)
}

// RateLimiter throttles unauthenticated endpoints (contact form,
// password reset requests) using an atomic Postgres upsert per key.
type RateLimiter struct {
	store  limitStore
	config RateLimitConfig
	now    func() time.Time
}

func NewRateLimiter(pool *pgxpool.Pool, config RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		store:  &pgLimitStore{pool: pool, window: config.Window},
		config: config,
		now:    time.Now,
	}
}

// Middleware returns the rate limiting middleware
func (rl *RateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if rl.config.SkipFunc != nil && rl.config.SkipFunc(r) {
				next.ServeHTTP(w, r)
				return
			}

			for _, key := range rl.config.KeyFunc(r) {
				if !rl.checkRateLimit(r.Context(), key) {
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusTooManyRequests)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Too many requests. Try again later.",
						"code":  "RATE_LIMIT_EXCEEDED",
					})
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (rl *RateLimiter) checkRateLimit(ctx context.Context, key string) bool {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	// Hash the key for privacy
	hasher := sha256.New()
	hasher.Write([]byte(key))
	hashedKey := fmt.Sprintf("%x", hasher.Sum(nil))

	count, err := rl.store.bump(ctx, hashedKey, rl.now())
	if err != nil {
		// On database error, allow the request (fail open)
		return true
	}

	return count <= rl.config.Requests
}

type pgLimitStore struct {
	pool   *pgxpool.Pool
	window time.Duration
}

func (s *pgLimitStore) bump(ctx context.Context, key string, now time.Time) (int, error) {
	// The stored window_start is the time of the first request in the
	// window. A row whose window_start has aged past the window gets its
	// count reset to 1; otherwise the count keeps climbing.
	const q = `
		INSERT INTO rate_limits (rl_key, count, window_start, expires_at)
		VALUES ($1, 1, $2, $4)
		ON CONFLICT (rl_key) DO UPDATE SET
			count = CASE
				WHEN rate_limits.window_start < $3 THEN 1
				ELSE rate_limits.count + 1
			END,
			window_start = CASE
				WHEN rate_limits.window_start < $3 THEN $2
				ELSE rate_limits.window_start
			END,
			expires_at = $4
		RETURNING count`

	var count int
	err := s.pool.QueryRow(ctx, q, key, now, now.Add(-s.window), now.Add(s.window+time.Hour)).Scan(&count)
	return count, err
}

// IPKeyFunc rate limits by client IP only.
func IPKeyFunc(prefix string) func(r *http.Request) []string {
	return func(r *http.Request) []string {
		if ip := ClientIP(r); ip != "" {
			return []string{prefix + ":" + ip}
		}
		return nil
	}
}
