// Package categories manages course and article categories.
package categories

import (
	"time"

	"github.com/lib/pq"
)

type Category struct {
	ID            int64          `json:"id"`
	NameEn        string         `json:"nameEn"`
	NameAr        string         `json:"nameAr"`
	DescriptionEn *string        `json:"descriptionEn"`
	DescriptionAr *string        `json:"descriptionAr"`
	Tags          pq.StringArray `json:"tags"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

type ListQuery struct {
	Search string
	Offset int
	Limit  int
}
