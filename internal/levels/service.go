package levels

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

func (s *Service) Create(ctx context.Context, in CreateInput) (Level, error) {
	now := s.now().UTC()
	level := Level{
		ID:            uuid.New(),
		NameEn:        in.NameEn,
		NameAr:        in.NameAr,
		DescriptionEn: in.DescriptionEn,
		DescriptionAr: in.DescriptionAr,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.store.Create(ctx, level); err != nil {
		return Level{}, apperrors.Wrap(err, apperrors.CodeInternal, "failed to create level")
	}
	return level, nil
}

func (s *Service) Get(ctx context.Context, id string) (Level, error) {
	lid, err := uuid.Parse(id)
	if err != nil {
		return Level{}, notFound(id)
	}
	level, err := s.store.FindByID(ctx, lid)
	if errors.Is(err, sentinel.ErrNotFound) {
		return Level{}, notFound(id)
	}
	if err != nil {
		return Level{}, apperrors.Wrap(err, apperrors.CodeInternal, "failed to load level")
	}
	return level, nil
}

func (s *Service) List(ctx context.Context, search string, page httpapi.Page) (int, []Level, error) {
	q := ListQuery{Search: search, Offset: page.Offset(), Limit: page.PerPage}
	total, err := s.store.Count(ctx, q)
	if err != nil {
		return 0, nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to count levels")
	}
	list, err := s.store.List(ctx, q)
	if err != nil {
		return 0, nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to list levels")
	}
	return total, list, nil
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Level, error) {
	level, err := s.Get(ctx, id)
	if err != nil {
		return Level{}, err
	}

	if in.NameEn != nil {
		level.NameEn = *in.NameEn
	}
	if in.NameAr != nil {
		level.NameAr = *in.NameAr
	}
	if in.DescriptionEn != nil {
		level.DescriptionEn = in.DescriptionEn
	}
	if in.DescriptionAr != nil {
		level.DescriptionAr = in.DescriptionAr
	}
	level.UpdatedAt = s.now().UTC()

	if err := s.store.Update(ctx, level); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Level{}, notFound(id)
		}
		return Level{}, apperrors.Wrap(err, apperrors.CodeInternal, "failed to update level")
	}
	return level, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	lid, err := uuid.Parse(id)
	if err != nil {
		return notFound(id)
	}
	if err := s.store.Delete(ctx, lid); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return notFound(id)
		}
		return apperrors.Wrap(err, apperrors.CodeInternal, "failed to delete level")
	}
	return nil
}

func notFound(id string) error {
	return apperrors.Newf(apperrors.CodeNotFound, "Level with ID %s not found", id)
}
