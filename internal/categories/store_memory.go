package categories

import (
	"context"
	"sync"

	"academy/internal/storeutil"
	"academy/pkg/sentinel"
)

type InMemoryStore struct {
	mu         sync.RWMutex
	categories map[int64]Category
	order      []int64
	nextID     int64
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{categories: make(map[int64]Category)}
}

func (s *InMemoryStore) Create(_ context.Context, category Category) (Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	category.ID = s.nextID
	s.categories[category.ID] = category
	s.order = append(s.order, category.ID)
	return category, nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id int64) (Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if category, ok := s.categories[id]; ok {
		return category, nil
	}
	return Category{}, sentinel.ErrNotFound
}

func (s *InMemoryStore) Count(_ context.Context, q ListQuery) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.matching(q)), nil
}

func (s *InMemoryStore) List(_ context.Context, q ListQuery) ([]Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return storeutil.Paginate(s.matching(q), q.Offset, q.Limit), nil
}

func (s *InMemoryStore) Update(_ context.Context, category Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[category.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.categories[category.ID] = category
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.categories, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *InMemoryStore) matching(q ListQuery) []Category {
	matched := make([]Category, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		category := s.categories[s.order[i]]
		if storeutil.MatchSubstring(q.Search, category.NameEn, category.NameAr) {
			matched = append(matched, category)
		}
	}
	return matched
}
