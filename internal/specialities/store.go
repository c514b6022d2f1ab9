package specialities

import "context"

// Store implementations assign the ID on create and return the stored row.
type Store interface {
	Create(ctx context.Context, speciality Speciality) (Speciality, error)
	FindByID(ctx context.Context, id int64) (Speciality, error)
	Count(ctx context.Context, q ListQuery) (int, error)
	List(ctx context.Context, q ListQuery) ([]Speciality, error)
	Update(ctx context.Context, speciality Speciality) error
	Delete(ctx context.Context, id int64) error
}
