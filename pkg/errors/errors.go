// ================== pkg/errors/errors.go =================
package errors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("resource not found")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("resource changed concurrently, retry")
	ErrDuplicate    = errors.New("resource already exists")
	ErrValidation   = errors.New("validation failed")
	ErrInvalidState = errors.New("operation not allowed in current state")
)

// ValidationError carries the offending field so clients can highlight it.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Invalid builds a ValidationError for a single field.
func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Kinds of DuplicateError.
const (
	KindComplaint = "complaint"
	KindAppeal    = "appeal"
)

// DuplicateError is returned when a uniqueness constraint rejects an insert.
// ExistingID points at the row that won.
type DuplicateError struct {
	Kind       string
	ExistingID string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s already exists (id=%s)", e.Kind, e.ExistingID)
}

func (e *DuplicateError) Unwrap() error { return ErrDuplicate }

// Is, As and New are re-exported so callers only import one errors package.
func Is(err, target error) bool { return errors.Is(err, target) }

func As(err error, target any) bool { return errors.As(err, target) }

func New(text string) error { return errors.New(text) }
