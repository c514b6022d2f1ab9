package contact

import (
	"context"
	"sync"

	"academy/internal/storeutil"
	"academy/pkg/sentinel"
)

type InMemoryStore struct {
	mu       sync.RWMutex
	messages map[int64]Message
	order    []int64
	nextID   int64
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{messages: make(map[int64]Message)}
}

func (s *InMemoryStore) Create(_ context.Context, message Message) (Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	message.ID = s.nextID
	s.messages[message.ID] = message
	s.order = append(s.order, message.ID)
	return message, nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id int64) (Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if message, ok := s.messages[id]; ok {
		return message, nil
	}
	return Message{}, sentinel.ErrNotFound
}

func (s *InMemoryStore) Count(_ context.Context, q ListQuery) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.matching(q)), nil
}

func (s *InMemoryStore) List(_ context.Context, q ListQuery) ([]Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return storeutil.Paginate(s.matching(q), q.Offset, q.Limit), nil
}

func (s *InMemoryStore) Update(_ context.Context, message Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.messages[message.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.messages[message.ID] = message
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.messages[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.messages, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *InMemoryStore) matching(q ListQuery) []Message {
	matched := make([]Message, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		message := s.messages[s.order[i]]
		if q.Read != nil && message.Read != *q.Read {
			continue
		}
		subject := ""
		if message.Subject != nil {
			subject = *message.Subject
		}
		if storeutil.MatchSubstring(q.Search, message.Name, message.Email, subject, message.Message) {
			matched = append(matched, message)
		}
	}
	return matched
}
