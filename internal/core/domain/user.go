package domain

import (
	"errors"
	"time"
)

// Role is the closed set of permission groups a user can hold.
type Role string

const (
	RoleOwner Role = "owner"
	RoleGuest Role = "guest"
)

var ErrInvalidRole = errors.New("role must be owner or guest")

// ParseRole constrains an incoming role string to the closed enum.
// Registration must never store a free-text role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleOwner, RoleGuest:
		return Role(s), nil
	default:
		return "", ErrInvalidRole
	}
}

// User models an authenticated actor in the system.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
