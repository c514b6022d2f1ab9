package articles

import (
	"context"
	"sort"
	"sync"

	"academy/internal/storeutil"
	"academy/pkg/sentinel"
)

type InMemoryStore struct {
	mu       sync.RWMutex
	articles map[int64]Article
	order    []int64
	nextID   int64
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{articles: make(map[int64]Article)}
}

func (s *InMemoryStore) Create(_ context.Context, article Article) (Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	article.ID = s.nextID
	s.articles[article.ID] = article
	s.order = append(s.order, article.ID)
	return article, nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id int64) (Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if article, ok := s.articles[id]; ok {
		return article, nil
	}
	return Article{}, sentinel.ErrNotFound
}

func (s *InMemoryStore) Count(_ context.Context, q ListQuery) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.matching(q)), nil
}

func (s *InMemoryStore) List(_ context.Context, q ListQuery) ([]Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return storeutil.Paginate(s.matching(q), q.Offset, q.Limit), nil
}

func (s *InMemoryStore) Update(_ context.Context, article Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.articles[article.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.articles[article.ID] = article
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.articles[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.articles, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// matching sorts by publish date descending with unpublished articles last,
// matching the postgres NULLS LAST ordering.
func (s *InMemoryStore) matching(q ListQuery) []Article {
	matched := make([]Article, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		article := s.articles[s.order[i]]
		if q.Published != nil && article.Published != *q.Published {
			continue
		}
		if storeutil.MatchSubstring(q.Search, article.TitleEn, article.TitleAr, article.ContentEn, article.ContentAr) {
			matched = append(matched, article)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i].PublishDate, matched[j].PublishDate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
	return matched
}
