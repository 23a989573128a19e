package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/harmonylane/lessonbook/internal/domain"
)

type AvailabilityRepository interface {
	ListActive(ctx context.Context) ([]domain.SlotWithInstructor, error)
	ListByInstructor(ctx context.Context, instructorID int64) ([]domain.AvailabilitySlot, error)
	Create(ctx context.Context, instructorID int64, req *domain.CreateSlotRequest) (*domain.AvailabilitySlot, error)
	Deactivate(ctx context.Context, id, instructorID int64) (bool, error)
}

type availabilityRepository struct {
	pool *pgxpool.Pool
}

func NewAvailabilityRepository(pool *pgxpool.Pool) AvailabilityRepository {
	return &availabilityRepository{pool: pool}
}

const slotCols = `s.id, s.instructor_id, s.day_of_week, s.start_time, s.end_time, s.active, s.created_at`

func (r *availabilityRepository) ListActive(ctx context.Context) ([]domain.SlotWithInstructor, error) {
	const q = `
		SELECT ` + slotCols + `, u.full_name, u.email
		FROM availability_slots s
		JOIN users u ON u.id = s.instructor_id
		WHERE s.active
		ORDER BY s.day_of_week, s.start_time`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []domain.SlotWithInstructor
	for rows.Next() {
		var s domain.SlotWithInstructor
		if err := rows.Scan(
			&s.ID, &s.InstructorID, &s.DayOfWeek, &s.StartTime, &s.EndTime, &s.Active, &s.CreatedAt,
			&s.InstructorName, &s.InstructorEmail,
		); err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

func (r *availabilityRepository) ListByInstructor(ctx context.Context, instructorID int64) ([]domain.AvailabilitySlot, error) {
	const q = `
		SELECT id, instructor_id, day_of_week, start_time, end_time, active, created_at
		FROM availability_slots
		WHERE instructor_id = $1 AND active
		ORDER BY day_of_week, start_time`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, instructorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []domain.AvailabilitySlot
	for rows.Next() {
		var s domain.AvailabilitySlot
		if err := rows.Scan(&s.ID, &s.InstructorID, &s.DayOfWeek, &s.StartTime, &s.EndTime, &s.Active, &s.CreatedAt); err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

func (r *availabilityRepository) Create(ctx context.Context, instructorID int64, req *domain.CreateSlotRequest) (*domain.AvailabilitySlot, error) {
	const q = `
		INSERT INTO availability_slots (instructor_id, day_of_week, start_time, end_time)
		VALUES ($1, $2, $3, $4)
		RETURNING id, instructor_id, day_of_week, start_time, end_time, active, created_at`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var s domain.AvailabilitySlot
	err := r.pool.QueryRow(ctx, q, instructorID, req.DayOfWeek, req.StartTime, req.EndTime).Scan(
		&s.ID, &s.InstructorID, &s.DayOfWeek, &s.StartTime, &s.EndTime, &s.Active, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Deactivate soft-deletes a window. The instructor guard is part of the
// statement so one instructor can never remove another's window.
func (r *availabilityRepository) Deactivate(ctx context.Context, id, instructorID int64) (bool, error) {
	const q = `
		UPDATE availability_slots
		SET active = false
		WHERE id = $1 AND instructor_id = $2 AND active
		RETURNING id`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var got int64
	err := r.pool.QueryRow(ctx, q, id, instructorID).Scan(&got)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
