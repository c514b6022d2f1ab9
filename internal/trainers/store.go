package trainers

import (
	"context"

	"github.com/google/uuid"
)

type Store interface {
	Create(ctx context.Context, trainer Trainer) error
	FindByID(ctx context.Context, id uuid.UUID) (Trainer, error)
	Count(ctx context.Context, q ListQuery) (int, error)
	List(ctx context.Context, q ListQuery) ([]Trainer, error)
	Update(ctx context.Context, trainer Trainer) error
	Delete(ctx context.Context, id uuid.UUID) error
}
