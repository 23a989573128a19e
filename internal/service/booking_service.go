package service

import (
	"context"
	"time"

	"github.com/harmonylane/lessonbook/internal/domain"
	"github.com/harmonylane/lessonbook/internal/repository"
	"github.com/harmonylane/lessonbook/pkg/events"
	"github.com/harmonylane/lessonbook/pkg/logger"
)

type BookingService interface {
	Create(ctx context.Context, student *domain.User, req *domain.CreateBookingRequest) (*domain.Booking, error)
	ListForStudent(ctx context.Context, studentID int64) ([]domain.BookingView, error)
	ListForInstructor(ctx context.Context, instructorID int64) ([]domain.BookingView, error)
	UpdateStatus(ctx context.Context, instructorID, bookingID int64, next domain.BookingStatus) (*domain.Booking, error)
}

type bookingService struct {
	bookings    repository.BookingRepository
	lessonTypes repository.LessonTypeRepository
	users       repository.UserRepository
	bus         events.Publisher
}

func NewBookingService(
	bookings repository.BookingRepository,
	lessonTypes repository.LessonTypeRepository,
	users repository.UserRepository,
	bus events.Publisher,
) BookingService {
	return &bookingService{
		bookings:    bookings,
		lessonTypes: lessonTypes,
		users:       users,
		bus:         bus,
	}
}

// Create validates the whole selection before anything touches storage:
// a missing lesson type, date or time fails here, not in Postgres.
func (s *bookingService) Create(ctx context.Context, student *domain.User, req *domain.CreateBookingRequest) (*domain.Booking, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	lessonType, err := s.lessonTypes.FindByID(ctx, req.LessonTypeID)
	if err != nil {
		return nil, err
	}
	if lessonType == nil || !lessonType.Active {
		return nil, ErrNotFound
	}

	instructor, err := s.users.FindByID(ctx, req.InstructorID)
	if err != nil {
		return nil, err
	}
	if instructor == nil || instructor.Role != domain.RoleInstructor {
		return nil, ErrNotFound
	}

	booking, err := s.bookings.Create(ctx, student.ID, req)
	if err != nil {
		return nil, err
	}

	evt := events.BookingCreatedEvent{
		BookingID:       booking.ID,
		StudentID:       student.ID,
		StudentName:     student.FullName,
		StudentEmail:    student.Email,
		InstructorID:    instructor.ID,
		InstructorEmail: instructor.Email,
		LessonTypeName:  lessonType.Name,
		ScheduledDate:   booking.ScheduledDate.Format(domain.ScheduledDateLayout),
		ScheduledTime:   booking.ScheduledTime,
		CreatedAt:       booking.CreatedAt,
	}
	if err := s.bus.Publish(ctx, events.BookingCreated, evt); err != nil {
		logger.ErrorContext(ctx, "booking event publish failed", "booking_id", booking.ID, "error", err)
	}

	return booking, nil
}

func (s *bookingService) ListForStudent(ctx context.Context, studentID int64) ([]domain.BookingView, error) {
	return s.bookings.ListByStudent(ctx, studentID)
}

func (s *bookingService) ListForInstructor(ctx context.Context, instructorID int64) ([]domain.BookingView, error) {
	return s.bookings.ListByInstructor(ctx, instructorID)
}

// UpdateStatus moves a booking along the pending/confirmed/cancelled/
// completed machine. Only the booking's own instructor may do it, and
// the stored row must still be in the status the transition starts from.
func (s *bookingService) UpdateStatus(ctx context.Context, instructorID, bookingID int64, next domain.BookingStatus) (*domain.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrNotFound
	}
	if booking.InstructorID != instructorID {
		return nil, ErrForbidden
	}
	if !booking.Status.CanTransitionTo(next) {
		return nil, ErrInvalidTransition
	}

	updated, err := s.bookings.UpdateStatus(ctx, bookingID, booking.Status, next)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrConflict
	}

	student, err := s.users.FindByID(ctx, booking.StudentID)
	if err == nil && student != nil {
		evt := events.BookingStatusChangedEvent{
			BookingID:     booking.ID,
			StudentEmail:  student.Email,
			StudentName:   student.FullName,
			OldStatus:     string(booking.Status),
			NewStatus:     string(next),
			ScheduledDate: booking.ScheduledDate.Format(domain.ScheduledDateLayout),
			ScheduledTime: booking.ScheduledTime,
			ChangedAt:     time.Now(),
		}
		if err := s.bus.Publish(ctx, events.BookingStatusChanged, evt); err != nil {
			logger.ErrorContext(ctx, "status event publish failed", "booking_id", booking.ID, "error", err)
		}
	}

	booking.Status = next
	booking.UpdatedAt = time.Now()
	return booking, nil
}
