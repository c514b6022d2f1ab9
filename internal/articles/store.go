package articles

import "context"

// Store implementations assign the ID on create and return the stored row.
// Listings order by publish date, newest first, unpublished last.
type Store interface {
	Create(ctx context.Context, article Article) (Article, error)
	FindByID(ctx context.Context, id int64) (Article, error)
	Count(ctx context.Context, q ListQuery) (int, error)
	List(ctx context.Context, q ListQuery) ([]Article, error)
	Update(ctx context.Context, article Article) error
	Delete(ctx context.Context, id int64) error
}
