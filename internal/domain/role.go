package domain

import (
	"slices"
	"strings"
)

// Role is the access level attached to an account
type Role string

const (
	RoleUser   Role = "USER"
	RoleAdmin  Role = "ADMIN"
	RoleSeller Role = "SELLER"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSeller:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// Roles is a set of roles required by an operation
type Roles []Role

// Contains reports whether role is a member of the set.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}

func (rs Roles) String() string {
	names := make([]string, len(rs))
	for i, r := range rs {
		names[i] = string(r)
	}
	return strings.Join(names, ",")
}
