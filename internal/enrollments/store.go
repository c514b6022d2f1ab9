package enrollments

import (
	"context"

	"github.com/google/uuid"
)

type Store interface {
	Create(ctx context.Context, enrollment Enrollment) error
	FindByID(ctx context.Context, id uuid.UUID) (Enrollment, error)
	// FindByUserAndCourse detects duplicate enrollments.
	FindByUserAndCourse(ctx context.Context, userID, courseID uuid.UUID) (Enrollment, error)
	Count(ctx context.Context, q ListQuery) (int, error)
	List(ctx context.Context, q ListQuery) ([]Enrollment, error)
	Update(ctx context.Context, enrollment Enrollment) error
	Delete(ctx context.Context, id uuid.UUID) error
}
