package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// VerifyRepository stores one-shot tokens: email verification and
// password reset. A token is consumed at most once and only before its
// expiry.
type VerifyRepository interface {
	CreateEmailVerification(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	ConsumeEmailVerification(ctx context.Context, token string) (userID int64, err error)

	CreatePasswordReset(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	ConsumePasswordReset(ctx context.Context, token string) (userID int64, err error)

	DeleteExpiredTokens(ctx context.Context) (int64, error)
}

type verifyRepository struct {
	pool *pgxpool.Pool
}

func NewVerifyRepository(pool *pgxpool.Pool) VerifyRepository {
	return &verifyRepository{pool: pool}
}

func (r *verifyRepository) CreateEmailVerification(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	return r.createToken(ctx, "email_verification", userID, token, expiresAt)
}

func (r *verifyRepository) ConsumeEmailVerification(ctx context.Context, token string) (int64, error) {
	return r.consumeToken(ctx, "email_verification", token)
}

func (r *verifyRepository) CreatePasswordReset(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	return r.createToken(ctx, "password_reset", userID, token, expiresAt)
}

func (r *verifyRepository) ConsumePasswordReset(ctx context.Context, token string) (int64, error) {
	return r.consumeToken(ctx, "password_reset", token)
}

func (r *verifyRepository) createToken(ctx context.Context, purpose string, userID int64, token string, expiresAt time.Time) error {
	const q = `
		INSERT INTO verification_tokens (purpose, user_id, token, expires_at)
		VALUES ($1, $2, $3, $4)`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.pool.Exec(ctx, q, purpose, userID, token, expiresAt)
	return err
}

func (r *verifyRepository) consumeToken(ctx context.Context, purpose, token string) (int64, error) {
	const q = `
		UPDATE verification_tokens
		SET used_at = now()
		WHERE purpose = $1
		  AND token = $2
		  AND used_at IS NULL
		  AND expires_at > now()
		RETURNING user_id`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var userID int64
	err := r.pool.QueryRow(ctx, q, purpose, token).Scan(&userID)
	if err == pgx.ErrNoRows {
		return 0, nil // Invalid, used, or expired
	}
	return userID, err
}

func (r *verifyRepository) DeleteExpiredTokens(ctx context.Context) (int64, error) {
	const q = `
		DELETE FROM verification_tokens
		WHERE (used_at IS NOT NULL AND used_at < now() - interval '30 days')
		   OR (used_at IS NULL AND expires_at < now() - interval '7 days')`

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.pool.Exec(ctx, q)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected(), nil
}
