package faq

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
	TitleEn  string `json:"titleEn"`
	TitleAr  string `json:"titleAr"`
	AnswerEn string `json:"answerEn"`
	AnswerAr string `json:"answerAr"`
}

type UpdateInput struct {
	TitleEn  *string `json:"titleEn"`
	TitleAr  *string `json:"titleAr"`
	AnswerEn *string `json:"answerEn"`
	AnswerAr *string `json:"answerAr"`
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Question, error) {
	now := s.now().UTC()
	question, err := s.store.Create(ctx, Question{
		TitleEn:   in.TitleEn,
		TitleAr:   in.TitleAr,
		AnswerEn:  in.AnswerEn,
		AnswerAr:  in.AnswerAr,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return Question{}, apperrors.Wrap(err, apperrors.CodeInternal, "failed to create frequent question")
	}
	return question, nil
}

func (s *Service) Get(ctx context.Context, id string) (Question, error) {
	qid, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return Question{}, notFound(id)
	}
	question, err := s.store.FindByID(ctx, qid)
	if errors.Is(err, sentinel.ErrNotFound) {
		return Question{}, notFound(id)
	}
	if err != nil {
		return Question{}, apperrors.Wrap(err, apperrors.CodeInternal, "failed to load frequent question")
	}
	return question, nil
}

func (s *Service) List(ctx context.Context, search string, page httpapi.Page) (int, []Question, error) {
	q := ListQuery{Search: search, Offset: page.Offset(), Limit: page.PerPage}
	total, err := s.store.Count(ctx, q)
	if err != nil {
		return 0, nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to count frequent questions")
	}
	list, err := s.store.List(ctx, q)
	if err != nil {
		return 0, nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to list frequent questions")
	}
	return total, list, nil
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Question, error) {
	question, err := s.Get(ctx, id)
	if err != nil {
		return Question{}, err
	}

	if in.TitleEn != nil {
		question.TitleEn = *in.TitleEn
	}
	if in.TitleAr != nil {
		question.TitleAr = *in.TitleAr
	}
	if in.AnswerEn != nil {
		question.AnswerEn = *in.AnswerEn
	}
	if in.AnswerAr != nil {
		question.AnswerAr = *in.AnswerAr
	}
	question.UpdatedAt = s.now().UTC()

	if err := s.store.Update(ctx, question); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Question{}, notFound(id)
		}
		return Question{}, apperrors.Wrap(err, apperrors.CodeInternal, "failed to update frequent question")
	}
	return question, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	qid, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return notFound(id)
	}
	if err := s.store.Delete(ctx, qid); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return notFound(id)
		}
		return apperrors.Wrap(err, apperrors.CodeInternal, "failed to delete frequent question")
	}
	return nil
}

func notFound(id string) error {
	return apperrors.Newf(apperrors.CodeNotFound, "Frequent question with ID %s not found", id)
}
