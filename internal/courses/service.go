package courses

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

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
	NameEn        string     `json:"nameEn"`
	NameAr        string     `json:"nameAr"`
	DescriptionEn *string    `json:"descriptionEn"`
	DescriptionAr *string    `json:"descriptionAr"`
	CategoryID    *int64     `json:"categoryId"`
	TrainerID     *uuid.UUID `json:"trainerId"`
	LevelID       *uuid.UUID `json:"levelId"`
	Published     *bool      `json:"published"`
	Price         *float64   `json:"price"`
	URL           *string    `json:"url"`
	SyllabusEn    []string   `json:"syllabusEn"`
	SyllabusAr    []string   `json:"syllabusAr"`
}

type UpdateInput struct {
	NameEn        *string    `json:"nameEn"`
	NameAr        *string    `json:"nameAr"`
	DescriptionEn *string    `json:"descriptionEn"`
	DescriptionAr *string    `json:"descriptionAr"`
	CategoryID    *int64     `json:"categoryId"`
	TrainerID     *uuid.UUID `json:"trainerId"`
	LevelID       *uuid.UUID `json:"levelId"`
	Published     *bool      `json:"published"`
	Price         *float64   `json:"price"`
	URL           *string    `json:"url"`
	SyllabusEn    []string   `json:"syllabusEn"`
	SyllabusAr    []string   `json:"syllabusAr"`
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Course, error) {
	now := s.now().UTC()
	syllabusEn := in.SyllabusEn
	if syllabusEn == nil {
		syllabusEn = []string{}
	}
	syllabusAr := in.SyllabusAr
	if syllabusAr == nil {
		syllabusAr = []string{}
	}
	course := Course{
		ID:            uuid.New(),
		NameEn:        in.NameEn,
		NameAr:        in.NameAr,
		DescriptionEn: in.DescriptionEn,
		DescriptionAr: in.DescriptionAr,
		CategoryID:    in.CategoryID,
		TrainerID:     in.TrainerID,
		LevelID:       in.LevelID,
		Price:         in.Price,
		URL:           in.URL,
		SyllabusEn:    syllabusEn,
		SyllabusAr:    syllabusAr,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if in.Published != nil {
		course.Published = *in.Published
	}
	if err := s.store.Create(ctx, course); err != nil {
		return Course{}, apperrors.Wrap(err, apperrors.CodeInternal, "failed to create course")
	}
	return course, nil
}

func (s *Service) Get(ctx context.Context, id string) (Course, error) {
	cid, err := uuid.Parse(id)
	if err != nil {
		return Course{}, notFound(id)
	}
	course, err := s.store.FindByID(ctx, cid)
	if errors.Is(err, sentinel.ErrNotFound) {
		return Course{}, notFound(id)
	}
	if err != nil {
		return Course{}, apperrors.Wrap(err, apperrors.CodeInternal, "failed to load course")
	}
	return course, nil
}

func (s *Service) List(ctx context.Context, q ListQuery, page httpapi.Page) (int, []Course, error) {
	q.Offset = page.Offset()
	q.Limit = page.PerPage
	total, err := s.store.Count(ctx, q)
	if err != nil {
		return 0, nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to count courses")
	}
	list, err := s.store.List(ctx, q)
	if err != nil {
		return 0, nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to list courses")
	}
	return total, list, nil
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Course, error) {
	course, err := s.Get(ctx, id)
	if err != nil {
		return Course{}, err
	}

	if in.NameEn != nil {
		course.NameEn = *in.NameEn
	}
	if in.NameAr != nil {
		course.NameAr = *in.NameAr
	}
	if in.DescriptionEn != nil {
		course.DescriptionEn = in.DescriptionEn
	}
	if in.DescriptionAr != nil {
		course.DescriptionAr = in.DescriptionAr
	}
	if in.CategoryID != nil {
		course.CategoryID = in.CategoryID
	}
	if in.TrainerID != nil {
		course.TrainerID = in.TrainerID
	}
	if in.LevelID != nil {
		course.LevelID = in.LevelID
	}
	if in.Published != nil {
		course.Published = *in.Published
	}
	if in.Price != nil {
		course.Price = in.Price
	}
	if in.URL != nil {
		course.URL = in.URL
	}
	if in.SyllabusEn != nil {
		course.SyllabusEn = in.SyllabusEn
	}
	if in.SyllabusAr != nil {
		course.SyllabusAr = in.SyllabusAr
	}
	course.UpdatedAt = s.now().UTC()

	if err := s.store.Update(ctx, course); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Course{}, notFound(id)
		}
		return Course{}, apperrors.Wrap(err, apperrors.CodeInternal, "failed to update course")
	}
	return course, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	cid, err := uuid.Parse(id)
	if err != nil {
		return notFound(id)
	}
	if err := s.store.Delete(ctx, cid); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return notFound(id)
		}
		return apperrors.Wrap(err, apperrors.CodeInternal, "failed to delete course")
	}
	return nil
}

// Exists reports whether a course id references a stored course.
func (s *Service) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, err := s.store.FindByID(ctx, id)
	if errors.Is(err, sentinel.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, apperrors.Wrap(err, apperrors.CodeInternal, "failed to load course")
	}
	return true, nil
}

func notFound(id string) error {
	return apperrors.Newf(apperrors.CodeNotFound, "Course with ID %s not found", id)
}
