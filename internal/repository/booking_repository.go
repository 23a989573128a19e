package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/harmonylane/lessonbook/internal/domain"
)

type BookingRepository interface {
	Create(ctx context.Context, studentID int64, req *domain.CreateBookingRequest) (*domain.Booking, error)
	FindByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByStudent(ctx context.Context, studentID int64) ([]domain.BookingView, error)
	ListByInstructor(ctx context.Context, instructorID int64) ([]domain.BookingView, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) (bool, error)
}

type bookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) BookingRepository {
	return &bookingRepository{pool: pool}
}

const bookingCols = `b.id, b.student_id, b.instructor_id, b.lesson_type_id, b.scheduled_date, b.scheduled_time, b.status, b.notes, b.created_at, b.updated_at`

func (r *bookingRepository) Create(ctx context.Context, studentID int64, req *domain.CreateBookingRequest) (*domain.Booking, error) {
	const q = `
		INSERT INTO bookings (student_id, instructor_id, lesson_type_id, scheduled_date, scheduled_time, status, notes)
		VALUES ($1, $2, $3, $4, $5, 'pending', $6)
		RETURNING id, student_id, instructor_id, lesson_type_id, scheduled_date, scheduled_time, status, notes, created_at, updated_at`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var b domain.Booking
	err := r.pool.QueryRow(ctx, q,
		studentID, req.InstructorID, req.LessonTypeID, req.ScheduledDate, req.ScheduledTime, req.Notes,
	).Scan(
		&b.ID, &b.StudentID, &b.InstructorID, &b.LessonTypeID,
		&b.ScheduledDate, &b.ScheduledTime, &b.Status, &b.Notes,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id int64) (*domain.Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings b WHERE b.id=$1`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var b domain.Booking
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&b.ID, &b.StudentID, &b.InstructorID, &b.LessonTypeID,
		&b.ScheduledDate, &b.ScheduledTime, &b.Status, &b.Notes,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

const bookingViewQuery = `
	SELECT ` + bookingCols + `,
		st.full_name, st.email, lt.name, lt.duration_minutes
	FROM bookings b
	JOIN users st ON st.id = b.student_id
	JOIN lesson_types lt ON lt.id = b.lesson_type_id`

func (r *bookingRepository) ListByStudent(ctx context.Context, studentID int64) ([]domain.BookingView, error) {
	const q = bookingViewQuery + `
	WHERE b.student_id = $1
	ORDER BY b.scheduled_date DESC, b.scheduled_time DESC`

	return r.listViews(ctx, q, studentID)
}

func (r *bookingRepository) ListByInstructor(ctx context.Context, instructorID int64) ([]domain.BookingView, error) {
	const q = bookingViewQuery + `
	WHERE b.instructor_id = $1
	ORDER BY b.scheduled_date DESC, b.scheduled_time DESC`

	return r.listViews(ctx, q, instructorID)
}

func (r *bookingRepository) listViews(ctx context.Context, q string, args ...any) ([]domain.BookingView, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []domain.BookingView
	for rows.Next() {
		var v domain.BookingView
		if err := rows.Scan(
			&v.ID, &v.StudentID, &v.InstructorID, &v.LessonTypeID,
			&v.ScheduledDate, &v.ScheduledTime, &v.Status, &v.Notes,
			&v.CreatedAt, &v.UpdatedAt,
			&v.StudentName, &v.StudentEmail, &v.LessonTypeName, &v.DurationMinutes,
		); err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, rows.Err()
}

// UpdateStatus moves a booking from one status to another. The expected
// current status is part of the WHERE clause, so two concurrent updates
// cannot both win.
func (r *bookingRepository) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) (bool, error) {
	const q = `
		UPDATE bookings
		SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2
		RETURNING id`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var got int64
	err := r.pool.QueryRow(ctx, q, id, from, to).Scan(&got)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
