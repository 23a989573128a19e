package service

import (
	"context"

	"github.com/harmonylane/lessonbook/internal/domain"
	"github.com/harmonylane/lessonbook/internal/repository"
	"github.com/harmonylane/lessonbook/pkg/events"
	"github.com/harmonylane/lessonbook/pkg/logger"
)

type ContactService interface {
	Submit(ctx context.Context, req *domain.ContactRequest) (*domain.ContactSubmission, error)
	List(ctx context.Context, limit, offset int) ([]domain.ContactSubmission, error)
}

type contactService struct {
	contacts repository.ContactRepository
	bus      events.Publisher
}

func NewContactService(contacts repository.ContactRepository, bus events.Publisher) ContactService {
	return &contactService{contacts: contacts, bus: bus}
}

func (s *contactService) Submit(ctx context.Context, req *domain.ContactRequest) (*domain.ContactSubmission, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sub, err := s.contacts.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	evt := events.ContactReceivedEvent{
		Name:       sub.Name,
		Email:      sub.Email,
		Message:    sub.Message,
		ReceivedAt: sub.CreatedAt,
	}
	if err := s.bus.Publish(ctx, events.ContactReceived, evt); err != nil {
		logger.ErrorContext(ctx, "contact event publish failed", "error", err)
	}

	return sub, nil
}

func (s *contactService) List(ctx context.Context, limit, offset int) ([]domain.ContactSubmission, error) {
	return s.contacts.List(ctx, limit, offset)
}
