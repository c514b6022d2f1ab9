package faq

import "context"

// Store implementations assign the ID on create and return the stored row.
type Store interface {
	Create(ctx context.Context, question Question) (Question, error)
	FindByID(ctx context.Context, id int64) (Question, error)
	Count(ctx context.Context, q ListQuery) (int, error)
	List(ctx context.Context, q ListQuery) ([]Question, error)
	Update(ctx context.Context, question Question) error
	Delete(ctx context.Context, id int64) error
}
