package faq

import (
	"context"
	"sync"

	"academy/internal/storeutil"
	"academy/pkg/sentinel"
)

type InMemoryStore struct {
	mu        sync.RWMutex
	questions map[int64]Question
	order     []int64
	nextID    int64
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{questions: make(map[int64]Question)}
}

func (s *InMemoryStore) Create(_ context.Context, question Question) (Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	question.ID = s.nextID
	s.questions[question.ID] = question
	s.order = append(s.order, question.ID)
	return question, nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id int64) (Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if question, ok := s.questions[id]; ok {
		return question, nil
	}
	return Question{}, sentinel.ErrNotFound
}

func (s *InMemoryStore) Count(_ context.Context, q ListQuery) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.matching(q)), nil
}

func (s *InMemoryStore) List(_ context.Context, q ListQuery) ([]Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return storeutil.Paginate(s.matching(q), q.Offset, q.Limit), nil
}

func (s *InMemoryStore) Update(_ context.Context, question Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.questions[question.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.questions[question.ID] = question
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.questions[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.questions, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *InMemoryStore) matching(q ListQuery) []Question {
	matched := make([]Question, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		question := s.questions[s.order[i]]
		if storeutil.MatchSubstring(q.Search, question.TitleEn, question.TitleAr, question.AnswerEn, question.AnswerAr) {
			matched = append(matched, question)
		}
	}
	return matched
}
