// Package courses manages the course catalog.
package courses

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Course struct {
	ID            uuid.UUID      `json:"id"`
	NameEn        string         `json:"nameEn"`
	NameAr        string         `json:"nameAr"`
	DescriptionEn *string        `json:"descriptionEn"`
	DescriptionAr *string        `json:"descriptionAr"`
	CategoryID    *int64         `json:"categoryId"`
	TrainerID     *uuid.UUID     `json:"trainerId"`
	LevelID       *uuid.UUID     `json:"levelId"`
	Published     bool           `json:"published"`
	Price         *float64       `json:"price"`
	URL           *string        `json:"url"`
	SyllabusEn    pq.StringArray `json:"syllabusEn"`
	SyllabusAr    pq.StringArray `json:"syllabusAr"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// ListQuery narrows a catalog listing. Search matches names and
// descriptions in both languages.
type ListQuery struct {
	Search     string
	CategoryID *int64
	TrainerID  *uuid.UUID
	LevelID    *uuid.UUID
	Published  *bool
	MinPrice   *float64
	MaxPrice   *float64
	Offset     int
	Limit      int
}
