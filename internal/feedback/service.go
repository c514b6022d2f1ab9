package feedback

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"

	"academy/internal/httpapi"
	"academy/pkg/apperrors"
	"academy/pkg/sentinel"
)

// CourseChecker verifies that a referenced course exists.
type CourseChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type Service struct {
	store   Store
	courses CourseChecker
	now     func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(store Store, courses CourseChecker, opts ...Option) *Service {
	s := &Service{store: store, courses: courses, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type CreateInput struct {
	CourseID  uuid.UUID  `json:"courseId"`
	UserID    *uuid.UUID `json:"userId"`
	Email     *string    `json:"email"`
	Rating    int        `json:"rating"`
	CommentEn *string    `json:"commentEn"`
	CommentAr *string    `json:"commentAr"`
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Feedback, error) {
	ok, err := s.courses.Exists(ctx, in.CourseID)
	if err != nil {
		return Feedback{}, apperrors.Wrap(err, apperrors.CodeInternal, "failed to check course")
	}
	if !ok {
		return Feedback{}, apperrors.Newf(apperrors.CodeNotFound, "Course with ID %s not found", in.CourseID)
	}

	now := s.now().UTC()
	fb, err := s.store.Create(ctx, Feedback{
		CourseID:  in.CourseID,
		UserID:    in.UserID,
		Email:     in.Email,
		Rating:    in.Rating,
		CommentEn: in.CommentEn,
		CommentAr: in.CommentAr,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return Feedback{}, apperrors.Wrap(err, apperrors.CodeInternal, "failed to create feedback")
	}
	return fb, nil
}

func (s *Service) Get(ctx context.Context, id string) (Feedback, error) {
	fid, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return Feedback{}, notFound(id)
	}
	fb, err := s.store.FindByID(ctx, fid)
	if errors.Is(err, sentinel.ErrNotFound) {
		return Feedback{}, notFound(id)
	}
	if err != nil {
		return Feedback{}, apperrors.Wrap(err, apperrors.CodeInternal, "failed to load feedback")
	}
	return fb, nil
}

// ListByCourse returns feedback for a single course, newest first.
func (s *Service) ListByCourse(ctx context.Context, courseID string, page httpapi.Page) (int, []Feedback, error) {
	cid, err := uuid.Parse(courseID)
	if err != nil {
		return 0, nil, apperrors.Newf(apperrors.CodeNotFound, "Course with ID %s not found", courseID)
	}
	return s.list(ctx, ListQuery{CourseID: &cid, Offset: page.Offset(), Limit: page.PerPage})
}

// ListByUser returns feedback left by a single user, newest first.
func (s *Service) ListByUser(ctx context.Context, userID string, page httpapi.Page) (int, []Feedback, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return 0, nil, apperrors.Newf(apperrors.CodeNotFound, "User with ID %s not found", userID)
	}
	return s.list(ctx, ListQuery{UserID: &uid, Offset: page.Offset(), Limit: page.PerPage})
}

func (s *Service) list(ctx context.Context, q ListQuery) (int, []Feedback, error) {
	total, err := s.store.Count(ctx, q)
	if err != nil {
		return 0, nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to count feedback")
	}
	list, err := s.store.List(ctx, q)
	if err != nil {
		return 0, nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to list feedback")
	}
	return total, list, nil
}

type UpdateInput struct {
	Rating    *int    `json:"rating"`
	CommentEn *string `json:"commentEn"`
	CommentAr *string `json:"commentAr"`
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Feedback, error) {
	fb, err := s.Get(ctx, id)
	if err != nil {
		return Feedback{}, err
	}
	if in.Rating != nil {
		fb.Rating = *in.Rating
	}
	if in.CommentEn != nil {
		fb.CommentEn = in.CommentEn
	}
	if in.CommentAr != nil {
		fb.CommentAr = in.CommentAr
	}
	fb.UpdatedAt = s.now().UTC()
	if err := s.store.Update(ctx, fb); err != nil {
		return Feedback{}, apperrors.Wrap(err, apperrors.CodeInternal, "failed to update feedback")
	}
	return fb, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	fid, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return notFound(id)
	}
	if err := s.store.Delete(ctx, fid); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return notFound(id)
		}
		return apperrors.Wrap(err, apperrors.CodeInternal, "failed to delete feedback")
	}
	return nil
}

func notFound(id string) error {
	return apperrors.Newf(apperrors.CodeNotFound, "Feedback with ID %s not found", id)
}
