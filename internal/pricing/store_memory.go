package pricing

import (
	"context"
	"sync"

	"academy/internal/storeutil"
	"academy/pkg/sentinel"
)

type InMemoryStore struct {
	mu     sync.RWMutex
	plans  map[int64]Plan
	order  []int64
	nextID int64
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{plans: make(map[int64]Plan)}
}

func (s *InMemoryStore) Create(_ context.Context, plan Plan) (Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	plan.ID = s.nextID
	s.plans[plan.ID] = plan
	s.order = append(s.order, plan.ID)
	return plan, nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id int64) (Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if plan, ok := s.plans[id]; ok {
		return plan, nil
	}
	return Plan{}, sentinel.ErrNotFound
}

func (s *InMemoryStore) Count(_ context.Context, q ListQuery) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.matching(q)), nil
}

func (s *InMemoryStore) List(_ context.Context, q ListQuery) ([]Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return storeutil.Paginate(s.matching(q), q.Offset, q.Limit), nil
}

func (s *InMemoryStore) Update(_ context.Context, plan Plan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.plans[plan.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.plans[plan.ID] = plan
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.plans[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.plans, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *InMemoryStore) matching(q ListQuery) []Plan {
	matched := make([]Plan, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		plan := s.plans[s.order[i]]
		if q.Active != nil && plan.Active != *q.Active {
			continue
		}
		if storeutil.MatchSubstring(q.Search, plan.NameEn, plan.NameAr) {
			matched = append(matched, plan)
		}
	}
	return matched
}
