package users

import (
	"context"

	"github.com/google/uuid"
)

// ListQuery narrows a user listing. Search matches email and display name.
type ListQuery struct {
	Search string
	Offset int
	Limit  int
}

type Store interface {
	Create(ctx context.Context, user User) error
	FindByID(ctx context.Context, id uuid.UUID) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	Count(ctx context.Context, q ListQuery) (int, error)
	List(ctx context.Context, q ListQuery) ([]User, error)
	Update(ctx context.Context, user User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type RoleStore interface {
	FindByID(ctx context.Context, id int64) (Role, error)
	FindByName(ctx context.Context, name string) (Role, error)
	List(ctx context.Context) ([]Role, error)
}
