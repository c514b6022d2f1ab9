package trainers

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"academy/internal/storeutil"
	"academy/pkg/sentinel"
)

type InMemoryStore struct {
	mu       sync.RWMutex
	trainers map[uuid.UUID]Trainer
	order    []uuid.UUID
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{trainers: make(map[uuid.UUID]Trainer)}
}

func (s *InMemoryStore) Create(_ context.Context, trainer Trainer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trainers[trainer.ID] = trainer
	s.order = append(s.order, trainer.ID)
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id uuid.UUID) (Trainer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if trainer, ok := s.trainers[id]; ok {
		return trainer, nil
	}
	return Trainer{}, sentinel.ErrNotFound
}

func (s *InMemoryStore) Count(_ context.Context, q ListQuery) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.matching(q)), nil
}

func (s *InMemoryStore) List(_ context.Context, q ListQuery) ([]Trainer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return storeutil.Paginate(s.matching(q), q.Offset, q.Limit), nil
}

func (s *InMemoryStore) Update(_ context.Context, trainer Trainer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.trainers[trainer.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.trainers[trainer.ID] = trainer
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.trainers[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.trainers, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *InMemoryStore) matching(q ListQuery) []Trainer {
	matched := make([]Trainer, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		trainer := s.trainers[s.order[i]]
		if q.Active != nil && trainer.Active != *q.Active {
			continue
		}
		if storeutil.MatchSubstring(q.Search, trainer.NameEn, trainer.NameAr) {
			matched = append(matched, trainer)
		}
	}
	return matched
}
