package pricing

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
	NameEn     string   `json:"nameEn"`
	NameAr     string   `json:"nameAr"`
	Price      float64  `json:"price"`
	Period     *string  `json:"period"`
	FeaturesEn []string `json:"featuresEn"`
	FeaturesAr []string `json:"featuresAr"`
	Active     *bool    `json:"active"`
}

type UpdateInput struct {
	NameEn     *string  `json:"nameEn"`
	NameAr     *string  `json:"nameAr"`
	Price      *float64 `json:"price"`
	Period     *string  `json:"period"`
	FeaturesEn []string `json:"featuresEn"`
	FeaturesAr []string `json:"featuresAr"`
	Active     *bool    `json:"active"`
}

// Create stores a plan; absent active defaults to true and absent feature
// lists default to empty.
func (s *Service) Create(ctx context.Context, in CreateInput) (Plan, error) {
	now := s.now().UTC()
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	featuresEn := in.FeaturesEn
	if featuresEn == nil {
		featuresEn = []string{}
	}
	featuresAr := in.FeaturesAr
	if featuresAr == nil {
		featuresAr = []string{}
	}
	plan, err := s.store.Create(ctx, Plan{
		NameEn:     in.NameEn,
		NameAr:     in.NameAr,
		Price:      in.Price,
		Period:     in.Period,
		FeaturesEn: featuresEn,
		FeaturesAr: featuresAr,
		Active:     active,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return Plan{}, apperrors.Wrap(err, apperrors.CodeInternal, "failed to create pricing plan")
	}
	return plan, nil
}

func (s *Service) Get(ctx context.Context, id string) (Plan, error) {
	pid, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return Plan{}, notFound(id)
	}
	plan, err := s.store.FindByID(ctx, pid)
	if errors.Is(err, sentinel.ErrNotFound) {
		return Plan{}, notFound(id)
	}
	if err != nil {
		return Plan{}, apperrors.Wrap(err, apperrors.CodeInternal, "failed to load pricing plan")
	}
	return plan, nil
}

// List returns plans matching the filter. A nil active filter means the
// caller did not choose, which defaults to active plans only.
func (s *Service) List(ctx context.Context, search string, active *bool, page httpapi.Page) (int, []Plan, error) {
	if active == nil {
		defaultActive := true
		active = &defaultActive
	}
	q := ListQuery{Search: search, Active: active, Offset: page.Offset(), Limit: page.PerPage}
	total, err := s.store.Count(ctx, q)
	if err != nil {
		return 0, nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to count pricing plans")
	}
	list, err := s.store.List(ctx, q)
	if err != nil {
		return 0, nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to list pricing plans")
	}
	return total, list, nil
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Plan, error) {
	plan, err := s.Get(ctx, id)
	if err != nil {
		return Plan{}, err
	}

	if in.NameEn != nil {
		plan.NameEn = *in.NameEn
	}
	if in.NameAr != nil {
		plan.NameAr = *in.NameAr
	}
	if in.Price != nil {
		plan.Price = *in.Price
	}
	if in.Period != nil {
		plan.Period = in.Period
	}
	if in.FeaturesEn != nil {
		plan.FeaturesEn = in.FeaturesEn
	}
	if in.FeaturesAr != nil {
		plan.FeaturesAr = in.FeaturesAr
	}
	if in.Active != nil {
		plan.Active = *in.Active
	}
	plan.UpdatedAt = s.now().UTC()

	if err := s.store.Update(ctx, plan); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Plan{}, notFound(id)
		}
		return Plan{}, apperrors.Wrap(err, apperrors.CodeInternal, "failed to update pricing plan")
	}
	return plan, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	pid, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return notFound(id)
	}
	if err := s.store.Delete(ctx, pid); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return notFound(id)
		}
		return apperrors.Wrap(err, apperrors.CodeInternal, "failed to delete pricing plan")
	}
	return nil
}

// ToggleActive flips the active flag and returns the new state.
func (s *Service) ToggleActive(ctx context.Context, id string) (Plan, error) {
	plan, err := s.Get(ctx, id)
	if err != nil {
		return Plan{}, err
	}
	plan.Active = !plan.Active
	plan.UpdatedAt = s.now().UTC()
	if err := s.store.Update(ctx, plan); err != nil {
		return Plan{}, apperrors.Wrap(err, apperrors.CodeInternal, "failed to update pricing plan")
	}
	return plan, nil
}

func notFound(id string) error {
	return apperrors.Newf(apperrors.CodeNotFound, "Pricing plan with ID %s not found", id)
}
