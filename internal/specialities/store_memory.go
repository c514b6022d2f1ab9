package specialities

import (
	"context"
	"sync"

	"academy/internal/storeutil"
	"academy/pkg/sentinel"
)

type InMemoryStore struct {
	mu           sync.RWMutex
	specialities map[int64]Speciality
	order        []int64
	nextID       int64
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{specialities: make(map[int64]Speciality)}
}

func (s *InMemoryStore) Create(_ context.Context, speciality Speciality) (Speciality, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	speciality.ID = s.nextID
	s.specialities[speciality.ID] = speciality
	s.order = append(s.order, speciality.ID)
	return speciality, nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id int64) (Speciality, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if speciality, ok := s.specialities[id]; ok {
		return speciality, nil
	}
	return Speciality{}, sentinel.ErrNotFound
}

func (s *InMemoryStore) Count(_ context.Context, q ListQuery) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.matching(q)), nil
}

func (s *InMemoryStore) List(_ context.Context, q ListQuery) ([]Speciality, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return storeutil.Paginate(s.matching(q), q.Offset, q.Limit), nil
}

func (s *InMemoryStore) Update(_ context.Context, speciality Speciality) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.specialities[speciality.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.specialities[speciality.ID] = speciality
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.specialities[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.specialities, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *InMemoryStore) matching(q ListQuery) []Speciality {
	matched := make([]Speciality, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		speciality := s.specialities[s.order[i]]
		if storeutil.MatchSubstring(q.Search, speciality.NameEn, speciality.NameAr) {
			matched = append(matched, speciality)
		}
	}
	return matched
}
