package pricing

import "context"

// Store implementations assign the ID on create and return the stored row.
type Store interface {
	Create(ctx context.Context, plan Plan) (Plan, error)
	FindByID(ctx context.Context, id int64) (Plan, error)
	Count(ctx context.Context, q ListQuery) (int, error)
	List(ctx context.Context, q ListQuery) ([]Plan, error)
	Update(ctx context.Context, plan Plan) error
	Delete(ctx context.Context, id int64) error
}
