package feedback

import "context"

// Store implementations assign the ID on create and return the stored row.
type Store interface {
	Create(ctx context.Context, fb Feedback) (Feedback, error)
	FindByID(ctx context.Context, id int64) (Feedback, error)
	Count(ctx context.Context, q ListQuery) (int, error)
	List(ctx context.Context, q ListQuery) ([]Feedback, error)
	Update(ctx context.Context, fb Feedback) error
	Delete(ctx context.Context, id int64) error
}
