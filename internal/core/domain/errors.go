package domain

import "errors"

var ErrUserNotFound = errors.New("user not found")
var ErrDuplicateEmail = errors.New("email already registered")
var ErrInvalidCredentials = errors.New("invalid email or password")
var ErrUnsupportedRole = errors.New("role does not take a profile")
var ErrSessionNotFound = errors.New("session not found")
var ErrUnauthenticated = errors.New("authentication required")
var ErrForbidden = errors.New("access forbidden")

// ValidationError carries a user-facing message for malformed input. It is
// recoverable: the client re-prompts with the message.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Validation builds a ValidationError with the given message.
func Validation(message string) error {
	return &ValidationError{Message: message}
}
