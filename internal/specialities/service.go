package specialities

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
	NameEn        string  `json:"nameEn"`
	NameAr        string  `json:"nameAr"`
	DescriptionEn *string `json:"descriptionEn"`
	DescriptionAr *string `json:"descriptionAr"`
}

type UpdateInput struct {
	NameEn        *string `json:"nameEn"`
	NameAr        *string `json:"nameAr"`
	DescriptionEn *string `json:"descriptionEn"`
	DescriptionAr *string `json:"descriptionAr"`
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Speciality, error) {
	now := s.now().UTC()
	speciality, err := s.store.Create(ctx, Speciality{
		NameEn:        in.NameEn,
		NameAr:        in.NameAr,
		DescriptionEn: in.DescriptionEn,
		DescriptionAr: in.DescriptionAr,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		return Speciality{}, apperrors.Wrap(err, apperrors.CodeInternal, "failed to create speciality")
	}
	return speciality, nil
}

func (s *Service) Get(ctx context.Context, id string) (Speciality, error) {
	sid, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return Speciality{}, notFound(id)
	}
	speciality, err := s.store.FindByID(ctx, sid)
	if errors.Is(err, sentinel.ErrNotFound) {
		return Speciality{}, notFound(id)
	}
	if err != nil {
		return Speciality{}, apperrors.Wrap(err, apperrors.CodeInternal, "failed to load speciality")
	}
	return speciality, nil
}

func (s *Service) List(ctx context.Context, search string, page httpapi.Page) (int, []Speciality, error) {
	q := ListQuery{Search: search, Offset: page.Offset(), Limit: page.PerPage}
	total, err := s.store.Count(ctx, q)
	if err != nil {
		return 0, nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to count specialities")
	}
	list, err := s.store.List(ctx, q)
	if err != nil {
		return 0, nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to list specialities")
	}
	return total, list, nil
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Speciality, error) {
	speciality, err := s.Get(ctx, id)
	if err != nil {
		return Speciality{}, err
	}

	if in.NameEn != nil {
		speciality.NameEn = *in.NameEn
	}
	if in.NameAr != nil {
		speciality.NameAr = *in.NameAr
	}
	if in.DescriptionEn != nil {
		speciality.DescriptionEn = in.DescriptionEn
	}
	if in.DescriptionAr != nil {
		speciality.DescriptionAr = in.DescriptionAr
	}
	speciality.UpdatedAt = s.now().UTC()

	if err := s.store.Update(ctx, speciality); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Speciality{}, notFound(id)
		}
		return Speciality{}, apperrors.Wrap(err, apperrors.CodeInternal, "failed to update speciality")
	}
	return speciality, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	sid, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return notFound(id)
	}
	if err := s.store.Delete(ctx, sid); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return notFound(id)
		}
		return apperrors.Wrap(err, apperrors.CodeInternal, "failed to delete speciality")
	}
	return nil
}

func notFound(id string) error {
	return apperrors.Newf(apperrors.CodeNotFound, "Speciality with ID %s not found", id)
}
