package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/harmonylane/lessonbook/internal/repository"
)

type mockTokenStore struct {
	purges chan struct{}
	err    error
}

var _ repository.VerifyRepository = (*mockTokenStore)(nil)

func (m *mockTokenStore) CreateEmailVerification(context.Context, int64, string, time.Time) error {
	return nil
}
func (m *mockTokenStore) ConsumeEmailVerification(context.Context, string) (int64, error) {
	return 0, nil
}
func (m *mockTokenStore) CreatePasswordReset(context.Context, int64, string, time.Time) error {
	return nil
}
func (m *mockTokenStore) ConsumePasswordReset(context.Context, string) (int64, error) {
	return 0, nil
}

func (m *mockTokenStore) DeleteExpiredTokens(context.Context) (int64, error) {
	select {
	case m.purges <- struct{}{}:
	default:
	}
	if m.err != nil {
		return 0, m.err
	}
	return 3, nil
}

func TestRunTokenCleanupPurgesOnTick(t *testing.T) {
	store := &mockTokenStore{purges: make(chan struct{}, 1)}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		RunTokenCleanup(ctx, store, 5*time.Millisecond)
		close(done)
	}()

	select {
	case <-store.purges:
	case <-time.After(time.Second):
		t.Fatal("cleanup never ran")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleanup did not stop on cancel")
	}
}

func TestRunTokenCleanupSurvivesStoreErrors(t *testing.T) {
	store := &mockTokenStore{purges: make(chan struct{}, 1), err: errors.New("connection refused")}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		RunTokenCleanup(ctx, store, 5*time.Millisecond)
		close(done)
	}()

	// Two failing rounds must not stop the loop.
	for i := 0; i < 2; i++ {
		select {
		case <-store.purges:
		case <-time.After(time.Second):
			t.Fatalf("round %d never ran", i+1)
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleanup did not stop on cancel")
	}
}
