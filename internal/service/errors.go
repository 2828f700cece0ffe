package service

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by the HTTP surface. Validation and authorization
// failures are detected before any external call.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")

	ErrNoImages         = fmt.Errorf("%w: at least one image required", ErrValidation)
	ErrMissingDeleteKey = fmt.Errorf("%w: delete key required", ErrValidation)
	ErrItemNotFound     = fmt.Errorf("%w: referenced item", ErrNotFound)
)

// validationf wraps ErrValidation with a user-facing detail message.
func validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
