package enrollments

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"academy/internal/httpapi"
	"academy/pkg/apperrors"
	"academy/pkg/sentinel"
)

// ReferenceChecker verifies that a referenced row exists.
type ReferenceChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type Service struct {
	store   Store
	users   ReferenceChecker
	courses ReferenceChecker
	now     func() time.Time
	newID   func() uuid.UUID
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

func NewService(store Store, users, courses ReferenceChecker, opts ...Option) *Service {
	s := &Service{store: store, users: users, courses: courses, now: time.Now, newID: uuid.New}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type CreateInput struct {
	UserID   uuid.UUID `json:"userId"`
	CourseID uuid.UUID `json:"courseId"`
	Status   *string   `json:"status"`
}

// Create enrolls a user in a course. Both references must exist and a user
// can hold at most one enrollment per course.
func (s *Service) Create(ctx context.Context, in CreateInput) (Enrollment, error) {
	ok, err := s.users.Exists(ctx, in.UserID)
	if err != nil {
		return Enrollment{}, apperrors.Wrap(err, apperrors.CodeInternal, "failed to check user")
	}
	if !ok {
		return Enrollment{}, apperrors.New(apperrors.CodeNotFound, "User not found")
	}

	ok, err = s.courses.Exists(ctx, in.CourseID)
	if err != nil {
		return Enrollment{}, apperrors.Wrap(err, apperrors.CodeInternal, "failed to check course")
	}
	if !ok {
		return Enrollment{}, apperrors.New(apperrors.CodeNotFound, "Course not found")
	}

	if _, err := s.store.FindByUserAndCourse(ctx, in.UserID, in.CourseID); err == nil {
		return Enrollment{}, apperrors.New(apperrors.CodeConflict, "User is already enrolled in this course")
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return Enrollment{}, apperrors.Wrap(err, apperrors.CodeInternal, "failed to check enrollment")
	}

	status := StatusActive
	if in.Status != nil && *in.Status != "" {
		status = *in.Status
	}

	now := s.now().UTC()
	enrollment := Enrollment{
		ID:         s.newID(),
		UserID:     in.UserID,
		CourseID:   in.CourseID,
		Status:     status,
		EnrolledAt: now,
		UpdatedAt:  now,
	}
	if err := s.store.Create(ctx, enrollment); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return Enrollment{}, apperrors.New(apperrors.CodeConflict, "User is already enrolled in this course")
		}
		return Enrollment{}, apperrors.Wrap(err, apperrors.CodeInternal, "failed to create enrollment")
	}
	return enrollment, nil
}

func (s *Service) Get(ctx context.Context, id string) (Enrollment, error) {
	eid, err := uuid.Parse(id)
	if err != nil {
		return Enrollment{}, notFound(id)
	}
	enrollment, err := s.store.FindByID(ctx, eid)
	if errors.Is(err, sentinel.ErrNotFound) {
		return Enrollment{}, notFound(id)
	}
	if err != nil {
		return Enrollment{}, apperrors.Wrap(err, apperrors.CodeInternal, "failed to load enrollment")
	}
	return enrollment, nil
}

// ListByUser returns a user's enrollments, newest first.
func (s *Service) ListByUser(ctx context.Context, userID string, page httpapi.Page) (int, []Enrollment, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return 0, nil, apperrors.New(apperrors.CodeNotFound, "User not found")
	}
	return s.list(ctx, ListQuery{UserID: &uid, Offset: page.Offset(), Limit: page.PerPage})
}

// ListByCourse returns a course's enrollments, newest first.
func (s *Service) ListByCourse(ctx context.Context, courseID string, page httpapi.Page) (int, []Enrollment, error) {
	cid, err := uuid.Parse(courseID)
	if err != nil {
		return 0, nil, apperrors.New(apperrors.CodeNotFound, "Course not found")
	}
	return s.list(ctx, ListQuery{CourseID: &cid, Offset: page.Offset(), Limit: page.PerPage})
}

func (s *Service) list(ctx context.Context, q ListQuery) (int, []Enrollment, error) {
	total, err := s.store.Count(ctx, q)
	if err != nil {
		return 0, nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to count enrollments")
	}
	list, err := s.store.List(ctx, q)
	if err != nil {
		return 0, nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to list enrollments")
	}
	return total, list, nil
}

// SetStatus moves an enrollment between active, completed and cancelled.
func (s *Service) SetStatus(ctx context.Context, id, status string) (Enrollment, error) {
	enrollment, err := s.Get(ctx, id)
	if err != nil {
		return Enrollment{}, err
	}
	enrollment.Status = status
	enrollment.UpdatedAt = s.now().UTC()
	if err := s.store.Update(ctx, enrollment); err != nil {
		return Enrollment{}, apperrors.Wrap(err, apperrors.CodeInternal, "failed to update enrollment")
	}
	return enrollment, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	eid, err := uuid.Parse(id)
	if err != nil {
		return notFound(id)
	}
	if err := s.store.Delete(ctx, eid); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return notFound(id)
		}
		return apperrors.Wrap(err, apperrors.CodeInternal, "failed to delete enrollment")
	}
	return nil
}

func notFound(id string) error {
	return apperrors.Newf(apperrors.CodeNotFound, "Enrollment with ID %s not found", id)
}
