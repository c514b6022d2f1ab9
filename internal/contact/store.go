package contact

import "context"

// Store implementations assign the ID on create and return the stored row.
type Store interface {
	Create(ctx context.Context, message Message) (Message, error)
	FindByID(ctx context.Context, id int64) (Message, error)
	Count(ctx context.Context, q ListQuery) (int, error)
	List(ctx context.Context, q ListQuery) ([]Message, error)
	Update(ctx context.Context, message Message) error
	Delete(ctx context.Context, id int64) error
}
