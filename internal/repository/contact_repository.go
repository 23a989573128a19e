package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/harmonylane/lessonbook/internal/domain"
)

type ContactRepository interface {
	Create(ctx context.Context, req *domain.ContactRequest) (*domain.ContactSubmission, error)
	List(ctx context.Context, limit, offset int) ([]domain.ContactSubmission, error)
}

type contactRepository struct {
	pool *pgxpool.Pool
}

func NewContactRepository(pool *pgxpool.Pool) ContactRepository {
	return &contactRepository{pool: pool}
}

func (r *contactRepository) Create(ctx context.Context, req *domain.ContactRequest) (*domain.ContactSubmission, error) {
	const q = `
		INSERT INTO contact_submissions (name, email, message)
		VALUES ($1, $2, $3)
		RETURNING id, name, email, message, created_at`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var s domain.ContactSubmission
	err := r.pool.QueryRow(ctx, q, req.Name, req.Email, req.Message).Scan(
		&s.ID, &s.Name, &s.Email, &s.Message, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *contactRepository) List(ctx context.Context, limit, offset int) ([]domain.ContactSubmission, error) {
	const q = `
		SELECT id, name, email, message, created_at
		FROM contact_submissions
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []domain.ContactSubmission
	for rows.Next() {
		var s domain.ContactSubmission
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Message, &s.CreatedAt); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}
