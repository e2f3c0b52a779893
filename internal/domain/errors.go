package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation failed")
	// ErrEmailTaken is a validation failure: clients see it as a 400 like any other bad input.
	ErrEmailTaken         = fmt.Errorf("%w: email already registered", ErrValidation)
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrUnauthorized = errors.New("unauthorized")
	ErrTokenInvalid = errors.New("token is invalid")
	ErrUserNotFound = errors.New("user not found")

	// ErrTodoNotFound covers malformed ids, missing todos and todos owned by someone else.
	ErrTodoNotFound = errors.New("todo not found")
)

// ValidationError wraps ErrValidation with a human readable reason.
func ValidationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
