package domain

import (
	"errors"
	"fmt"
)

// ErrPermissionDenied is returned by the role guard when the acting
// principal is missing or lacks a required role.
var ErrPermissionDenied = errors.New("permission denied")

// ValidationError reports input that violates a domain rule. It is detected
// before any store access and its message is safe to show to an end user.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// NewValidationError builds a ValidationError with a formatted reason.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// StorageError wraps a failure from the persistent store. The service layer
// does not interpret or retry it; it propagates to the caller as-is.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsStorage reports whether err is (or wraps) a StorageError.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
