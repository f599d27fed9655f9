package entities

import (
	"strings"

	domainerrors "classtrack/contexts/identity-access/identity-service/domain/errors"
)

const (
	MinUsernameLength = 3
	MinPasswordLength = 6
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	default:
		return false
	}
}

// ParseRole accepts the role names case-insensitively.
func ParseRole(raw string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(raw)))
	if !role.Valid() {
		return "", domainerrors.ErrInvalidRole
	}
	return role, nil
}

// User is an account. PasswordDigest never leaves the identity context.
type User struct {
	UserID         int64
	Username       string
	PasswordDigest string
	Role           Role
}

// Principal is the authenticated caller resolved from a bearer token.
type Principal struct {
	UserID   int64
	Username string
	Role     Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

func ValidateUsername(username string) error {
	if len([]rune(username)) < MinUsernameLength {
		return domainerrors.ErrInvalidUsername
	}
	return nil
}

func ValidatePassword(password string) error {
	if len([]rune(password)) < MinPasswordLength {
		return domainerrors.ErrInvalidPassword
	}
	return nil
}
