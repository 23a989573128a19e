package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/harmonylane/lessonbook/internal/domain"
	"github.com/harmonylane/lessonbook/internal/repository"
)

// ---------- Mocks ----------

type mockBookingRepo struct {
	nextID   int64
	bookings map[int64]*domain.Booking

	createCalls int
	createErr   error
}

func newMockBookingRepo() *mockBookingRepo {
	return &mockBookingRepo{nextID: 1, bookings: make(map[int64]*domain.Booking)}
}

func (m *mockBookingRepo) Create(_ context.Context, studentID int64, req *domain.CreateBookingRequest) (*domain.Booking, error) {
	m.createCalls++
	if m.createErr != nil {
		return nil, m.createErr
	}

	date, _ := time.Parse(domain.ScheduledDateLayout, req.ScheduledDate)
	b := &domain.Booking{
		ID:            m.nextID,
		StudentID:     studentID,
		InstructorID:  req.InstructorID,
		LessonTypeID:  req.LessonTypeID,
		ScheduledDate: date,
		ScheduledTime: req.ScheduledTime,
		Status:        domain.BookingPending,
		Notes:         req.Notes,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	m.bookings[b.ID] = b
	m.nextID++
	return b, nil
}

func (m *mockBookingRepo) FindByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := m.bookings[id]
	if !ok {
		return nil, nil
	}
	copied := *b
	return &copied, nil
}

func (m *mockBookingRepo) ListByStudent(context.Context, int64) ([]domain.BookingView, error) {
	return nil, nil
}

func (m *mockBookingRepo) ListByInstructor(context.Context, int64) ([]domain.BookingView, error) {
	return nil, nil
}

func (m *mockBookingRepo) UpdateStatus(_ context.Context, id int64, from, to domain.BookingStatus) (bool, error) {
	b, ok := m.bookings[id]
	if !ok || b.Status != from {
		return false, nil
	}
	b.Status = to
	return true, nil
}

var _ repository.BookingRepository = (*mockBookingRepo)(nil)

type mockLessonTypeRepo struct {
	types map[int64]*domain.LessonType
}

func (m *mockLessonTypeRepo) ListActive(context.Context) ([]domain.LessonType, error) {
	return nil, nil
}

func (m *mockLessonTypeRepo) FindByID(_ context.Context, id int64) (*domain.LessonType, error) {
	return m.types[id], nil
}

type mockUserRepo struct {
	users map[int64]*domain.User
}

func (m *mockUserRepo) Create(context.Context, *domain.SignUpRequest, string) (*domain.User, error) {
	return nil, errors.New("not implemented")
}
func (m *mockUserRepo) FindByEmail(context.Context, string) (*domain.User, error) { return nil, nil }
func (m *mockUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	return m.users[id], nil
}
func (m *mockUserRepo) MarkVerified(context.Context, int64) error               { return nil }
func (m *mockUserRepo) UpdatePasswordHash(context.Context, int64, string) error { return nil }

type mockBus struct {
	published []string
}

func (m *mockBus) Publish(_ context.Context, subject string, _ interface{}) error {
	m.published = append(m.published, subject)
	return nil
}

func (m *mockBus) Close() error { return nil }

// ---------- Test setup ----------

func newBookingFixture() (BookingService, *mockBookingRepo, *mockBus) {
	bookings := newMockBookingRepo()
	lessonTypes := &mockLessonTypeRepo{types: map[int64]*domain.LessonType{
		1: {ID: 1, Name: "Standard Lesson", DurationMinutes: 60, Active: true},
		2: {ID: 2, Name: "Retired Lesson", DurationMinutes: 60, Active: false},
	}}
	users := &mockUserRepo{users: map[int64]*domain.User{
		5:  {ID: 5, Role: domain.RoleStudent, Email: "student@example.com", FullName: "Student"},
		10: {ID: 10, Role: domain.RoleInstructor, Email: "instructor@example.com", FullName: "Instructor"},
	}}
	bus := &mockBus{}

	return NewBookingService(bookings, lessonTypes, users, bus), bookings, bus
}

func student() *domain.User {
	return &domain.User{ID: 5, Role: domain.RoleStudent, Email: "student@example.com", FullName: "Student"}
}

func validRequest() *domain.CreateBookingRequest {
	return &domain.CreateBookingRequest{
		LessonTypeID:  1,
		InstructorID:  10,
		ScheduledDate: "2026-10-05",
		ScheduledTime: "09:30",
	}
}

// ---------- Tests ----------

func TestBookingCreate_InvalidInputNeverHitsStorage(t *testing.T) {
	svc, repo, _ := newBookingFixture()

	bad := []*domain.CreateBookingRequest{
		{InstructorID: 10, ScheduledDate: "2026-10-05", ScheduledTime: "09:30"}, // no lesson type
		{LessonTypeID: 1, InstructorID: 10, ScheduledTime: "09:30"},             // no date
		{LessonTypeID: 1, InstructorID: 10, ScheduledDate: "2026-10-05"},        // no time
	}
	for _, req := range bad {
		if _, err := svc.Create(context.Background(), student(), req); err == nil {
			t.Errorf("expected error for %+v", req)
		}
	}

	if repo.createCalls != 0 {
		t.Fatalf("storage touched %d times for invalid input", repo.createCalls)
	}
}

func TestBookingCreate_UnknownOrInactiveLessonType(t *testing.T) {
	svc, _, _ := newBookingFixture()

	req := validRequest()
	req.LessonTypeID = 99
	if _, err := svc.Create(context.Background(), student(), req); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown lesson type: got %v, want ErrNotFound", err)
	}

	req = validRequest()
	req.LessonTypeID = 2
	if _, err := svc.Create(context.Background(), student(), req); !errors.Is(err, ErrNotFound) {
		t.Errorf("inactive lesson type: got %v, want ErrNotFound", err)
	}
}

func TestBookingCreate_InstructorMustBeInstructor(t *testing.T) {
	svc, _, _ := newBookingFixture()

	req := validRequest()
	req.InstructorID = 5 // a student
	if _, err := svc.Create(context.Background(), student(), req); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestBookingCreate_Success(t *testing.T) {
	svc, _, bus := newBookingFixture()

	b, err := svc.Create(context.Background(), student(), validRequest())
	if err != nil {
		t.Fatal(err)
	}
	if b.Status != domain.BookingPending {
		t.Errorf("new booking status = %s, want pending", b.Status)
	}
	if len(bus.published) != 1 || bus.published[0] != "booking.created" {
		t.Errorf("published = %v", bus.published)
	}
}

func TestBookingCreate_StorageErrorSurfaces(t *testing.T) {
	svc, repo, bus := newBookingFixture()
	repo.createErr = errors.New("connection refused")

	if _, err := svc.Create(context.Background(), student(), validRequest()); err == nil {
		t.Fatal("expected storage error to surface")
	}
	if len(bus.published) != 0 {
		t.Error("no event should be published when the insert fails")
	}
}

func TestUpdateStatus_OwnershipAndTransitions(t *testing.T) {
	svc, repo, bus := newBookingFixture()

	created, err := svc.Create(context.Background(), student(), validRequest())
	if err != nil {
		t.Fatal(err)
	}
	bus.published = nil

	// Someone else's instructor id.
	if _, err := svc.UpdateStatus(context.Background(), 999, created.ID, domain.BookingConfirmed); !errors.Is(err, ErrForbidden) {
		t.Errorf("foreign instructor: got %v, want ErrForbidden", err)
	}

	// pending -> completed skips confirmation.
	if _, err := svc.UpdateStatus(context.Background(), 10, created.ID, domain.BookingCompleted); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("pending->completed: got %v, want ErrInvalidTransition", err)
	}

	// pending -> confirmed is the happy path.
	updated, err := svc.UpdateStatus(context.Background(), 10, created.ID, domain.BookingConfirmed)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Status != domain.BookingConfirmed {
		t.Errorf("status = %s", updated.Status)
	}
	if len(bus.published) != 1 || bus.published[0] != "booking.status_changed" {
		t.Errorf("published = %v", bus.published)
	}

	// confirmed -> cancelled is not allowed; terminal states stay put.
	if _, err := svc.UpdateStatus(context.Background(), 10, created.ID, domain.BookingCancelled); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("confirmed->cancelled: got %v, want ErrInvalidTransition", err)
	}

	if _, err := svc.UpdateStatus(context.Background(), 10, created.ID, domain.BookingCompleted); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.UpdateStatus(context.Background(), 10, created.ID, domain.BookingConfirmed); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("completed is terminal: got %v", err)
	}

	if repo.bookings[created.ID].Status != domain.BookingCompleted {
		t.Errorf("stored status = %s", repo.bookings[created.ID].Status)
	}
}

func TestUpdateStatus_UnknownBooking(t *testing.T) {
	svc, _, _ := newBookingFixture()

	if _, err := svc.UpdateStatus(context.Background(), 10, 404, domain.BookingConfirmed); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}
