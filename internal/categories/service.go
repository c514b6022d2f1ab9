package categories

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
	NameEn        string   `json:"nameEn"`
	NameAr        string   `json:"nameAr"`
	DescriptionEn *string  `json:"descriptionEn"`
	DescriptionAr *string  `json:"descriptionAr"`
	Tags          []string `json:"tags"`
}

type UpdateInput struct {
	NameEn        *string  `json:"nameEn"`
	NameAr        *string  `json:"nameAr"`
	DescriptionEn *string  `json:"descriptionEn"`
	DescriptionAr *string  `json:"descriptionAr"`
	Tags          []string `json:"tags"`
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Category, error) {
	now := s.now().UTC()
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	category, err := s.store.Create(ctx, Category{
		NameEn:        in.NameEn,
		NameAr:        in.NameAr,
		DescriptionEn: in.DescriptionEn,
		DescriptionAr: in.DescriptionAr,
		Tags:          tags,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		return Category{}, apperrors.Wrap(err, apperrors.CodeInternal, "failed to create category")
	}
	return category, nil
}

func (s *Service) Get(ctx context.Context, id string) (Category, error) {
	cid, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return Category{}, notFound(id)
	}
	category, err := s.store.FindByID(ctx, cid)
	if errors.Is(err, sentinel.ErrNotFound) {
		return Category{}, notFound(id)
	}
	if err != nil {
		return Category{}, apperrors.Wrap(err, apperrors.CodeInternal, "failed to load category")
	}
	return category, nil
}

func (s *Service) List(ctx context.Context, search string, page httpapi.Page) (int, []Category, error) {
	q := ListQuery{Search: search, Offset: page.Offset(), Limit: page.PerPage}
	total, err := s.store.Count(ctx, q)
	if err != nil {
		return 0, nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to count categories")
	}
	list, err := s.store.List(ctx, q)
	if err != nil {
		return 0, nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to list categories")
	}
	return total, list, nil
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Category, error) {
	category, err := s.Get(ctx, id)
	if err != nil {
		return Category{}, err
	}

	if in.NameEn != nil {
		category.NameEn = *in.NameEn
	}
	if in.NameAr != nil {
		category.NameAr = *in.NameAr
	}
	if in.DescriptionEn != nil {
		category.DescriptionEn = in.DescriptionEn
	}
	if in.DescriptionAr != nil {
		category.DescriptionAr = in.DescriptionAr
	}
	if in.Tags != nil {
		category.Tags = in.Tags
	}
	category.UpdatedAt = s.now().UTC()

	if err := s.store.Update(ctx, category); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Category{}, notFound(id)
		}
		return Category{}, apperrors.Wrap(err, apperrors.CodeInternal, "failed to update category")
	}
	return category, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	cid, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return notFound(id)
	}
	if err := s.store.Delete(ctx, cid); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return notFound(id)
		}
		return apperrors.Wrap(err, apperrors.CodeInternal, "failed to delete category")
	}
	return nil
}

// Exists reports whether a category id references a stored category.
func (s *Service) Exists(ctx context.Context, id int64) (bool, error) {
	_, err := s.store.FindByID(ctx, id)
	if errors.Is(err, sentinel.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, apperrors.Wrap(err, apperrors.CodeInternal, "failed to load category")
	}
	return true, nil
}

func notFound(id string) error {
	return apperrors.Newf(apperrors.CodeNotFound, "Category with ID %s not found", id)
}
