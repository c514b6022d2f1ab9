// Package levels manages course difficulty levels.
package levels

import (
	"time"

	"github.com/google/uuid"
)

type Level struct {
	ID            uuid.UUID `json:"id"`
	NameEn        string    `json:"nameEn"`
	NameAr        string    `json:"nameAr"`
	DescriptionEn *string   `json:"descriptionEn"`
	DescriptionAr *string   `json:"descriptionAr"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ListQuery narrows a listing. Search matches both name fields.
type ListQuery struct {
	Search string
	Offset int
	Limit  int
}
