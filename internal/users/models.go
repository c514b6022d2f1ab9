// Package users implements account and role management. Role names gate
// every protected route, so role lookups always go back to the store; the
// current role is never carried in a token or cached between requests.
package users

import (
	"time"

	"github.com/google/uuid"
)

// Well-known role names seeded at install time.
const (
	RoleAdmin   = "admin"
	RoleTrainer = "trainer"
	RoleUser    = "user"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	DisplayName  string    `json:"displayName"`
	RoleID       int64     `json:"roleId"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
