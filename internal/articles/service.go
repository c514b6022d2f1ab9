package articles

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
	TitleEn    string  `json:"titleEn"`
	TitleAr    string  `json:"titleAr"`
	ContentEn  string  `json:"contentEn"`
	ContentAr  string  `json:"contentAr"`
	CategoryID *int64  `json:"categoryId"`
	ImageURL   *string `json:"imageUrl"`
	Published  *bool   `json:"published"`
}

type UpdateInput struct {
	TitleEn    *string `json:"titleEn"`
	TitleAr    *string `json:"titleAr"`
	ContentEn  *string `json:"contentEn"`
	ContentAr  *string `json:"contentAr"`
	CategoryID *int64  `json:"categoryId"`
	ImageURL   *string `json:"imageUrl"`
	Published  *bool   `json:"published"`
}

// Create stores an article. Creating as published stamps the publish date.
func (s *Service) Create(ctx context.Context, in CreateInput) (Article, error) {
	now := s.now().UTC()
	article := Article{
		TitleEn:    in.TitleEn,
		TitleAr:    in.TitleAr,
		ContentEn:  in.ContentEn,
		ContentAr:  in.ContentAr,
		CategoryID: in.CategoryID,
		ImageURL:   in.ImageURL,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if in.Published != nil && *in.Published {
		article.Published = true
		article.PublishDate = &now
	}
	article, err := s.store.Create(ctx, article)
	if err != nil {
		return Article{}, apperrors.Wrap(err, apperrors.CodeInternal, "failed to create article")
	}
	return article, nil
}

func (s *Service) Get(ctx context.Context, id string) (Article, error) {
	aid, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return Article{}, notFound(id)
	}
	article, err := s.store.FindByID(ctx, aid)
	if errors.Is(err, sentinel.ErrNotFound) {
		return Article{}, notFound(id)
	}
	if err != nil {
		return Article{}, apperrors.Wrap(err, apperrors.CodeInternal, "failed to load article")
	}
	return article, nil
}

func (s *Service) List(ctx context.Context, search string, published *bool, page httpapi.Page) (int, []Article, error) {
	q := ListQuery{Search: search, Published: published, Offset: page.Offset(), Limit: page.PerPage}
	total, err := s.store.Count(ctx, q)
	if err != nil {
		return 0, nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to count articles")
	}
	list, err := s.store.List(ctx, q)
	if err != nil {
		return 0, nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to list articles")
	}
	return total, list, nil
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Article, error) {
	article, err := s.Get(ctx, id)
	if err != nil {
		return Article{}, err
	}

	if in.TitleEn != nil {
		article.TitleEn = *in.TitleEn
	}
	if in.TitleAr != nil {
		article.TitleAr = *in.TitleAr
	}
	if in.ContentEn != nil {
		article.ContentEn = *in.ContentEn
	}
	if in.ContentAr != nil {
		article.ContentAr = *in.ContentAr
	}
	if in.CategoryID != nil {
		article.CategoryID = in.CategoryID
	}
	if in.ImageURL != nil {
		article.ImageURL = in.ImageURL
	}
	if in.Published != nil {
		article = s.applyPublished(article, *in.Published)
	}
	article.UpdatedAt = s.now().UTC()

	if err := s.store.Update(ctx, article); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Article{}, notFound(id)
		}
		return Article{}, apperrors.Wrap(err, apperrors.CodeInternal, "failed to update article")
	}
	return article, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	aid, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return notFound(id)
	}
	if err := s.store.Delete(ctx, aid); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return notFound(id)
		}
		return apperrors.Wrap(err, apperrors.CodeInternal, "failed to delete article")
	}
	return nil
}

// SetPublished toggles publication: publishing stamps the publish date
// with the current time, unpublishing clears it.
func (s *Service) SetPublished(ctx context.Context, id string, published bool) (Article, error) {
	article, err := s.Get(ctx, id)
	if err != nil {
		return Article{}, err
	}
	article = s.applyPublished(article, published)
	article.UpdatedAt = s.now().UTC()
	if err := s.store.Update(ctx, article); err != nil {
		return Article{}, apperrors.Wrap(err, apperrors.CodeInternal, "failed to update article")
	}
	return article, nil
}

func (s *Service) applyPublished(article Article, published bool) Article {
	article.Published = published
	if published {
		now := s.now().UTC()
		article.PublishDate = &now
	} else {
		article.PublishDate = nil
	}
	return article
}

func notFound(id string) error {
	return apperrors.Newf(apperrors.CodeNotFound, "Article with ID %s not found", id)
}
