// Package pricing manages subscription pricing plans. Listings default to
// active plans unless the caller filters explicitly.
package pricing

import (
	"time"

	"github.com/lib/pq"
)

type Plan struct {
	ID         int64          `json:"id"`
	NameEn     string         `json:"nameEn"`
	NameAr     string         `json:"nameAr"`
	Price      float64        `json:"price"`
	Period     *string        `json:"period"`
	FeaturesEn pq.StringArray `json:"featuresEn"`
	FeaturesAr pq.StringArray `json:"featuresAr"`
	Active     bool           `json:"active"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

type ListQuery struct {
	Search string
	Active *bool
	Offset int
	Limit  int
}
