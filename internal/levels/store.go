package levels

import (
	"context"

	"github.com/google/uuid"
)

type Store interface {
	Create(ctx context.Context, level Level) error
	FindByID(ctx context.Context, id uuid.UUID) (Level, error)
	Count(ctx context.Context, q ListQuery) (int, error)
	List(ctx context.Context, q ListQuery) ([]Level, error)
	Update(ctx context.Context, level Level) error
	Delete(ctx context.Context, id uuid.UUID) error
}
