// Package trainers manages trainer profiles, their active flag, and profile
// photo uploads.
package trainers

import (
	"time"

	"github.com/google/uuid"
)

type Trainer struct {
	ID           uuid.UUID `json:"id"`
	NameEn       string    `json:"nameEn"`
	NameAr       string    `json:"nameAr"`
	BioEn        *string   `json:"bioEn"`
	BioAr        *string   `json:"bioAr"`
	SpecialityID *int64    `json:"specialityId"`
	Email        *string   `json:"email"`
	Phone        *string   `json:"phone"`
	PhotoURL     *string   `json:"photoUrl"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type ListQuery struct {
	Search string
	Active *bool
	Offset int
	Limit  int
}
