package contact

import (
	"context"
	"errors"
	"strconv"
	"time"

	"academy/internal/httpapi"
	"academy/pkg/apperrors"
	"academy/pkg/sentinel"
)

type Service struct {
	store Store
	now   func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{store: store, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type CreateInput struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Subject *string `json:"subject"`
	Message string  `json:"message"`
}

// Create stores an incoming contact-form message, unread.
func (s *Service) Create(ctx context.Context, in CreateInput) (Message, error) {
	now := s.now().UTC()
	message, err := s.store.Create(ctx, Message{
		Name:      in.Name,
		Email:     in.Email,
		Subject:   in.Subject,
		Message:   in.Message,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return Message{}, apperrors.Wrap(err, apperrors.CodeInternal, "failed to create contact message")
	}
	return message, nil
}

func (s *Service) Get(ctx context.Context, id string) (Message, error) {
	mid, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return Message{}, notFound(id)
	}
	message, err := s.store.FindByID(ctx, mid)
	if errors.Is(err, sentinel.ErrNotFound) {
		return Message{}, notFound(id)
	}
	if err != nil {
		return Message{}, apperrors.Wrap(err, apperrors.CodeInternal, "failed to load contact message")
	}
	return message, nil
}

func (s *Service) List(ctx context.Context, search string, read *bool, page httpapi.Page) (int, []Message, error) {
	q := ListQuery{Search: search, Read: read, Offset: page.Offset(), Limit: page.PerPage}
	total, err := s.store.Count(ctx, q)
	if err != nil {
		return 0, nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to count contact messages")
	}
	list, err := s.store.List(ctx, q)
	if err != nil {
		return 0, nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to list contact messages")
	}
	return total, list, nil
}

// SetRead updates the read flag. A request without an explicit read value
// marks the message read.
func (s *Service) SetRead(ctx context.Context, id string, read bool) (Message, error) {
	message, err := s.Get(ctx, id)
	if err != nil {
		return Message{}, err
	}
	message.Read = read
	message.UpdatedAt = s.now().UTC()
	if err := s.store.Update(ctx, message); err != nil {
		return Message{}, apperrors.Wrap(err, apperrors.CodeInternal, "failed to update contact message")
	}
	return message, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	mid, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return notFound(id)
	}
	if err := s.store.Delete(ctx, mid); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return notFound(id)
		}
		return apperrors.Wrap(err, apperrors.CodeInternal, "failed to delete contact message")
	}
	return nil
}

func notFound(id string) error {
	return apperrors.Newf(apperrors.CodeNotFound, "Contact message with ID %s not found", id)
}
