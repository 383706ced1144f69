package services

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by the service layer. Handlers translate these
// into HTTP statuses; everything else surfaces as a 500.
var (
	// ErrNotFound means the review (or user) id does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnauthenticated means the action requires an identity and none
	// (or an invalid one) was presented.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden means the identity is valid but the role may not
	// perform the action.
	ErrForbidden = errors.New("forbidden")
)

// ValidationError reports malformed input. The message is safe to show
// to the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
