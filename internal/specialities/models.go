// Package specialities manages trainer speciality records.
package specialities

import "time"

type Speciality struct {
	ID            int64     `json:"id"`
	NameEn        string    `json:"nameEn"`
	NameAr        string    `json:"nameAr"`
	DescriptionEn *string   `json:"descriptionEn"`
	DescriptionAr *string   `json:"descriptionAr"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type ListQuery struct {
	Search string
	Offset int
	Limit  int
}
