package users

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"academy/internal/storeutil"
	"academy/pkg/sentinel"
)

// In-memory stores back unit tests and dev mode. Listing order is newest
// first, matching the created_at DESC ordering of the postgres store.
type InMemoryStore struct {
	mu    sync.RWMutex
	users map[uuid.UUID]User
	order []uuid.UUID
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{users: make(map[uuid.UUID]User)}
}

func (s *InMemoryStore) Create(_ context.Context, user User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return sentinel.ErrConflict
		}
	}
	s.users[user.ID] = user
	s.order = append(s.order, user.ID)
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id uuid.UUID) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if user, ok := s.users[id]; ok {
		return user, nil
	}
	return User{}, sentinel.ErrNotFound
}

func (s *InMemoryStore) FindByEmail(_ context.Context, email string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return User{}, sentinel.ErrNotFound
}

func (s *InMemoryStore) Count(_ context.Context, q ListQuery) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.matching(q)), nil
}

func (s *InMemoryStore) List(_ context.Context, q ListQuery) ([]User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matched := s.matching(q)
	return storeutil.Paginate(matched, q.Offset, q.Limit), nil
}

func (s *InMemoryStore) Update(_ context.Context, user User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.users[user.ID] = user
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.users, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// matching walks insertion order backwards so results come newest first.
// Callers hold the lock.
func (s *InMemoryStore) matching(q ListQuery) []User {
	matched := make([]User, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		user := s.users[s.order[i]]
		if storeutil.MatchSubstring(q.Search, user.Email, user.DisplayName) {
			matched = append(matched, user)
		}
	}
	return matched
}

type InMemoryRoleStore struct {
	mu    sync.RWMutex
	roles map[int64]Role
}

// NewInMemoryRoleStore seeds the three well-known roles.
func NewInMemoryRoleStore() *InMemoryRoleStore {
	return &InMemoryRoleStore{roles: map[int64]Role{
		1: {ID: 1, Name: RoleAdmin},
		2: {ID: 2, Name: RoleTrainer},
		3: {ID: 3, Name: RoleUser},
	}}
}

func (s *InMemoryRoleStore) FindByID(_ context.Context, id int64) (Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if role, ok := s.roles[id]; ok {
		return role, nil
	}
	return Role{}, sentinel.ErrNotFound
}

func (s *InMemoryRoleStore) FindByName(_ context.Context, name string) (Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, role := range s.roles {
		if role.Name == name {
			return role, nil
		}
	}
	return Role{}, sentinel.ErrNotFound
}

func (s *InMemoryRoleStore) List(_ context.Context) ([]Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	roles := make([]Role, 0, len(s.roles))
	for id := int64(1); id <= int64(len(s.roles)); id++ {
		if role, ok := s.roles[id]; ok {
			roles = append(roles, role)
		}
	}
	return roles, nil
}
