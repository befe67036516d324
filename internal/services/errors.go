package services

import (
	"github.com/ZigaLarissa/EduAssist/internal/repository"
	"github.com/pkg/errors"
)

var (
	// ErrNotFound is returned when a referenced document does not exist
	ErrNotFound = repository.ErrNotFound
	// ErrForbidden is returned when the caller may not act on a resource
	ErrForbidden = errors.New("forbidden")
	// ErrUnauthorized is returned when the caller's identity cannot be established
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationError reports invalid input. Its message is safe to show to users.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
