package domain

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidAdminKey    = errors.New("invalid admin creation key")
	ErrTooManyAttempts    = errors.New("too many login attempts")
	ErrOrderNotFound      = errors.New("order not found")
	ErrSignatureMismatch  = errors.New("payment signature mismatch")
)
