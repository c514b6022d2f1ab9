package courses

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"academy/internal/storeutil"
	"academy/pkg/sentinel"
)

type InMemoryStore struct {
	mu      sync.RWMutex
	courses map[uuid.UUID]Course
	order   []uuid.UUID
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{courses: make(map[uuid.UUID]Course)}
}

func (s *InMemoryStore) Create(_ context.Context, course Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.courses[course.ID] = course
	s.order = append(s.order, course.ID)
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id uuid.UUID) (Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if course, ok := s.courses[id]; ok {
		return course, nil
	}
	return Course{}, sentinel.ErrNotFound
}

func (s *InMemoryStore) Count(_ context.Context, q ListQuery) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.matching(q)), nil
}

func (s *InMemoryStore) List(_ context.Context, q ListQuery) ([]Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return storeutil.Paginate(s.matching(q), q.Offset, q.Limit), nil
}

func (s *InMemoryStore) Update(_ context.Context, course Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.courses[course.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.courses[course.ID] = course
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.courses[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.courses, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *InMemoryStore) matching(q ListQuery) []Course {
	matched := make([]Course, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		course := s.courses[s.order[i]]
		if !filterMatches(q, course) {
			continue
		}
		descEn, descAr := "", ""
		if course.DescriptionEn != nil {
			descEn = *course.DescriptionEn
		}
		if course.DescriptionAr != nil {
			descAr = *course.DescriptionAr
		}
		if storeutil.MatchSubstring(q.Search, course.NameEn, course.NameAr, descEn, descAr) {
			matched = append(matched, course)
		}
	}
	return matched
}

func filterMatches(q ListQuery, course Course) bool {
	if q.CategoryID != nil && (course.CategoryID == nil || *course.CategoryID != *q.CategoryID) {
		return false
	}
	if q.TrainerID != nil && (course.TrainerID == nil || *course.TrainerID != *q.TrainerID) {
		return false
	}
	if q.LevelID != nil && (course.LevelID == nil || *course.LevelID != *q.LevelID) {
		return false
	}
	if q.Published != nil && course.Published != *q.Published {
		return false
	}
	if q.MinPrice != nil && (course.Price == nil || *course.Price < *q.MinPrice) {
		return false
	}
	if q.MaxPrice != nil && (course.Price == nil || *course.Price > *q.MaxPrice) {
		return false
	}
	return true
}
