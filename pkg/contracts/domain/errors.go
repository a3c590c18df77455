package domain

import (
	"errors"
	"fmt"
)

// FormatError reports an upload that could not be read as a table at all.
// It is the only failure mode of an import: dirty individual cells degrade
// to category defaults instead of failing. On FormatError the target
// category's dataset is left unchanged.
type FormatError struct {
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unreadable table: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("unreadable table: %s", e.Reason)
}

// Unwrap returns the underlying parse error, if any.
func (e *FormatError) Unwrap() error {
	return e.Err
}

// NewFormatError creates a FormatError with an optional cause.
func NewFormatError(reason string, err error) *FormatError {
	return &FormatError{Reason: reason, Err: err}
}

// IsFormatError reports whether err is (or wraps) a FormatError.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}
