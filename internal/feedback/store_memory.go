package feedback

import (
	"context"
	"sync"

	"academy/internal/storeutil"
	"academy/pkg/sentinel"
)

type InMemoryStore struct {
	mu       sync.RWMutex
	feedback map[int64]Feedback
	order    []int64
	nextID   int64
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{feedback: make(map[int64]Feedback)}
}

func (s *InMemoryStore) Create(_ context.Context, fb Feedback) (Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	fb.ID = s.nextID
	s.feedback[fb.ID] = fb
	s.order = append(s.order, fb.ID)
	return fb, nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id int64) (Feedback, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if fb, ok := s.feedback[id]; ok {
		return fb, nil
	}
	return Feedback{}, sentinel.ErrNotFound
}

func (s *InMemoryStore) Count(_ context.Context, q ListQuery) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.matching(q)), nil
}

func (s *InMemoryStore) List(_ context.Context, q ListQuery) ([]Feedback, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return storeutil.Paginate(s.matching(q), q.Offset, q.Limit), nil
}

func (s *InMemoryStore) Update(_ context.Context, fb Feedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.feedback[fb.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.feedback[fb.ID] = fb
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.feedback[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.feedback, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *InMemoryStore) matching(q ListQuery) []Feedback {
	matched := make([]Feedback, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		fb := s.feedback[s.order[i]]
		if q.CourseID != nil && fb.CourseID != *q.CourseID {
			continue
		}
		if q.UserID != nil && (fb.UserID == nil || *fb.UserID != *q.UserID) {
			continue
		}
		matched = append(matched, fb)
	}
	return matched
}
