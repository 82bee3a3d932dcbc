// Package apperr defines the error taxonomy shared by the reminder workflow.
// Callers match with errors.Is / errors.As rather than string comparison.
package apperr

import (
	"errors"
	"fmt"
)

// ErrAuthRequired signals that no usable calendar access token is available.
// It is user-actionable: the caller should prompt the user to reconnect their
// Google Calendar rather than treat it as a generic failure.
var ErrAuthRequired = errors.New("no access token available, please reconnect your Google Calendar")

// ValidationError reports bad input to normalization or manual entry.
// The draft must be fixed; values are never silently coerced.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidation builds a ValidationError for a single field.
func NewValidation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// ExternalAPIError carries the upstream status code and message returned by
// the calendar API for non-auth failures.
type ExternalAPIError struct {
	Status  int
	Message string
}

func (e *ExternalAPIError) Error() string {
	return fmt.Sprintf("calendar API error (status %d): %s", e.Status, e.Message)
}

// PersistenceError wraps a database-layer failure. Fatal to the single
// operation, never to the process.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// NotFoundError reports that no record with the given id exists under the
// requesting owner's scope.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
