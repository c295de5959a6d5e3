package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents an account that can sign in and own products
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	FullName     string    `json:"fullName" db:"full_name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	IsActive     bool      `json:"isActive" db:"is_active"`
	Role         Role      `json:"role" db:"role"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// Public returns a copy of the user without the password hash.
func (u *User) Public() *User {
	if u == nil {
		return nil
	}
	out := *u
	out.PasswordHash = ""
	return &out
}

// NormalizeEmail lowercases and trims an email address. Emails are stored and compared in this form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
