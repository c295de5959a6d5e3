package auth

import (
	"errors"
	"fmt"

	"teslo-shop/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the bcrypt work factor used for stored passwords
const BcryptCost = 10

// MaxPasswordBytes is the longest input bcrypt accepts
const MaxPasswordBytes = 72

// Hasher hashes and verifies plaintext passwords
type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(hash, plaintext string) bool
}

type bcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a Hasher backed by bcrypt
func NewBcryptHasher() Hasher {
	return &bcryptHasher{cost: BcryptCost}
}

// Hash returns a salted bcrypt digest of plaintext. Inputs longer than
// MaxPasswordBytes are rejected as a validation failure.
func (h *bcryptHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("%w: password exceeds %d bytes", domain.ErrValidationFailed, MaxPasswordBytes)
	}
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches hash. A malformed hash never matches.
func (h *bcryptHasher) Verify(hash, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
