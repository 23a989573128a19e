package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/harmonylane/lessonbook/internal/domain"
)

type LessonTypeRepository interface {
	ListActive(ctx context.Context) ([]domain.LessonType, error)
	FindByID(ctx context.Context, id int64) (*domain.LessonType, error)
}

type lessonTypeRepository struct {
	pool *pgxpool.Pool
}

func NewLessonTypeRepository(pool *pgxpool.Pool) LessonTypeRepository {
	return &lessonTypeRepository{pool: pool}
}

const lessonTypeCols = `id, name, duration_minutes, price_cents, active, created_at`

func (r *lessonTypeRepository) ListActive(ctx context.Context) ([]domain.LessonType, error) {
	const q = `SELECT ` + lessonTypeCols + ` FROM lesson_types WHERE active ORDER BY name`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []domain.LessonType
	for rows.Next() {
		var lt domain.LessonType
		if err := rows.Scan(&lt.ID, &lt.Name, &lt.DurationMinutes, &lt.PriceCents, &lt.Active, &lt.CreatedAt); err != nil {
			return nil, err
		}
		types = append(types, lt)
	}
	return types, rows.Err()
}

func (r *lessonTypeRepository) FindByID(ctx context.Context, id int64) (*domain.LessonType, error) {
	const q = `SELECT ` + lessonTypeCols + ` FROM lesson_types WHERE id=$1`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var lt domain.LessonType
	err := r.pool.QueryRow(ctx, q, id).Scan(&lt.ID, &lt.Name, &lt.DurationMinutes, &lt.PriceCents, &lt.Active, &lt.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &lt, nil
}
