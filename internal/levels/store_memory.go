package levels

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"academy/internal/storeutil"
	"academy/pkg/sentinel"
)

type InMemoryStore struct {
	mu     sync.RWMutex
	levels map[uuid.UUID]Level
	order  []uuid.UUID
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{levels: make(map[uuid.UUID]Level)}
}

func (s *InMemoryStore) Create(_ context.Context, level Level) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.levels[level.ID] = level
	s.order = append(s.order, level.ID)
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id uuid.UUID) (Level, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if level, ok := s.levels[id]; ok {
		return level, nil
	}
	return Level{}, sentinel.ErrNotFound
}

func (s *InMemoryStore) Count(_ context.Context, q ListQuery) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.matching(q)), nil
}

func (s *InMemoryStore) List(_ context.Context, q ListQuery) ([]Level, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return storeutil.Paginate(s.matching(q), q.Offset, q.Limit), nil
}

func (s *InMemoryStore) Update(_ context.Context, level Level) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.levels[level.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.levels[level.ID] = level
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.levels[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.levels, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *InMemoryStore) matching(q ListQuery) []Level {
	matched := make([]Level, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		level := s.levels[s.order[i]]
		if storeutil.MatchSubstring(q.Search, level.NameEn, level.NameAr) {
			matched = append(matched, level)
		}
	}
	return matched
}
