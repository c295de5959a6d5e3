package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials   = errors.New("credentials are not valid")
	ErrUnauthenticated      = errors.New("authentication required")
	ErrTokenInvalid         = errors.New("token not valid")
	ErrForbidden            = errors.New("forbidden")
	ErrDuplicateKey         = errors.New("duplicate key")
	ErrRegistrationConflict = errors.New("an account with this email already exists")
	ErrNotFound             = errors.New("not found")
	ErrForeignKeyViolation  = errors.New("referenced entity does not exist")
	ErrValidationFailed     = errors.New("validation failed")
	ErrInternal             = errors.New("unexpected error, check server logs")
)

// ForbiddenError is returned when an authenticated user lacks a required role.
type ForbiddenError struct {
	FullName string
	Required Roles
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("User %s needs a valid role: [%s]", e.FullName, e.Required)
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// IsNotFound reports whether err means the referenced record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrForeignKeyViolation)
}
