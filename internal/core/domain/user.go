package domain

import (
	"errors"
	"time"
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrTooManyAttempts    = errors.New("too many failed login attempts")
)

// User models a registered account. The username is unique and never changes
// after registration; the password hash is the only mutable credential field.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ValidRole reports whether r is one of the two recognised roles.
func ValidRole(r string) bool {
	return r == RoleUser || r == RoleAdmin
}

// Active reports whether the account may authenticate. There is no soft
// deletion, so any stored account is active.
func (u *User) Active() bool {
	return u != nil
}
