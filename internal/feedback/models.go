// Package feedback manages course ratings and comments.
package feedback

import (
	"time"

	"github.com/google/uuid"
)

type Feedback struct {
	ID        int64      `json:"id"`
	CourseID  uuid.UUID  `json:"courseId"`
	UserID    *uuid.UUID `json:"userId"`
	Email     *string    `json:"email"`
	Rating    int        `json:"rating"`
	CommentEn *string    `json:"commentEn"`
	CommentAr *string    `json:"commentAr"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type ListQuery struct {
	CourseID *uuid.UUID
	UserID   *uuid.UUID
	Offset   int
	Limit    int
}
