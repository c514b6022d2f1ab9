package courses

import (
	"context"

	"github.com/google/uuid"
)

type Store interface {
	Create(ctx context.Context, course Course) error
	FindByID(ctx context.Context, id uuid.UUID) (Course, error)
	Count(ctx context.Context, q ListQuery) (int, error)
	List(ctx context.Context, q ListQuery) ([]Course, error)
	Update(ctx context.Context, course Course) error
	Delete(ctx context.Context, id uuid.UUID) error
}
