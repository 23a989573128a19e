package service

import (
	"context"
	"time"

	"github.com/harmonylane/lessonbook/internal/repository"
	"github.com/harmonylane/lessonbook/pkg/logger"
)

// RunTokenCleanup periodically purges consumed and long-expired
// verification tokens. It blocks until ctx is cancelled, so callers run
// it in its own goroutine.
func RunTokenCleanup(ctx context.Context, tokens repository.VerifyRepository, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := tokens.DeleteExpiredTokens(ctx)
			if err != nil {
				logger.ErrorContext(ctx, "token cleanup failed", "error", err)
				continue
			}
			if n > 0 {
				logger.InfoContext(ctx, "expired tokens purged", "count", n)
			}
		}
	}
}
