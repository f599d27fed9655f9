package errors

import "errors"

var (
	ErrInvalidUsername    = errors.New("username must be at least 3 characters long")
	ErrInvalidPassword    = errors.New("password must be at least 6 characters long")
	ErrInvalidRole        = errors.New("role must be one of admin, teacher, student")
	ErrInvalidUserID      = errors.New("invalid user id")
	ErrUsernameTaken      = errors.New("username already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInUse          = errors.New("user is still referenced")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrUnauthenticated    = errors.New("could not validate credentials")
)
