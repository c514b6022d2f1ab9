// Package enrollments tracks which users are enrolled in which courses.
package enrollments

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

type Enrollment struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"userId"`
	CourseID   uuid.UUID `json:"courseId"`
	Status     string    `json:"status"`
	EnrolledAt time.Time `json:"enrolledAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type ListQuery struct {
	UserID   *uuid.UUID
	CourseID *uuid.UUID
	Offset   int
	Limit    int
}
