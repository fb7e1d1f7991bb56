package model

import (
	"time"

	"github.com/google/uuid"
)

// Admin is an operator identity. Admins are created lazily on first login
// with the shared secret key and live in their own table, fully disjoint
// from user accounts.
type Admin struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewAdmin(email, passwordHash string) *Admin {
	return &Admin{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
}
