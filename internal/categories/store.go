package categories

import "context"

// Store implementations assign the ID on create and return the stored row.
type Store interface {
	Create(ctx context.Context, category Category) (Category, error)
	FindByID(ctx context.Context, id int64) (Category, error)
	Count(ctx context.Context, q ListQuery) (int, error)
	List(ctx context.Context, q ListQuery) ([]Category, error)
	Update(ctx context.Context, category Category) error
	Delete(ctx context.Context, id int64) error
}
