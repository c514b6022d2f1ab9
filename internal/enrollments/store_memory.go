package enrollments

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"academy/internal/storeutil"
	"academy/pkg/sentinel"
)

type InMemoryStore struct {
	mu          sync.RWMutex
	enrollments map[uuid.UUID]Enrollment
	order       []uuid.UUID
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{enrollments: make(map[uuid.UUID]Enrollment)}
}

func (s *InMemoryStore) Create(_ context.Context, enrollment Enrollment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enrollments[enrollment.ID] = enrollment
	s.order = append(s.order, enrollment.ID)
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id uuid.UUID) (Enrollment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if enrollment, ok := s.enrollments[id]; ok {
		return enrollment, nil
	}
	return Enrollment{}, sentinel.ErrNotFound
}

func (s *InMemoryStore) FindByUserAndCourse(_ context.Context, userID, courseID uuid.UUID) (Enrollment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, enrollment := range s.enrollments {
		if enrollment.UserID == userID && enrollment.CourseID == courseID {
			return enrollment, nil
		}
	}
	return Enrollment{}, sentinel.ErrNotFound
}

func (s *InMemoryStore) Count(_ context.Context, q ListQuery) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.matching(q)), nil
}

func (s *InMemoryStore) List(_ context.Context, q ListQuery) ([]Enrollment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return storeutil.Paginate(s.matching(q), q.Offset, q.Limit), nil
}

func (s *InMemoryStore) Update(_ context.Context, enrollment Enrollment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.enrollments[enrollment.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.enrollments[enrollment.ID] = enrollment
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.enrollments[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.enrollments, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *InMemoryStore) matching(q ListQuery) []Enrollment {
	matched := make([]Enrollment, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		enrollment := s.enrollments[s.order[i]]
		if q.UserID != nil && enrollment.UserID != *q.UserID {
			continue
		}
		if q.CourseID != nil && enrollment.CourseID != *q.CourseID {
			continue
		}
		matched = append(matched, enrollment)
	}
	return matched
}
