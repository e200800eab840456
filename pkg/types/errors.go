package types

import (
	"errors"
	"sort"
	"strings"
)

// Lookup errors.
var (
	ErrNotFound  = errors.New("book not found")
	ErrInvalidID = errors.New("invalid book ID")
)

// Validation errors. ErrValidation is the umbrella every ValidationError
// unwraps to; the others identify the specific checkout rule that failed.
var (
	ErrValidation        = errors.New("validation failed")
	ErrBorrowerRequired  = errors.New("borrower name and phone are required")
	ErrAlreadyCheckedOut = errors.New("book is already checked out")
	ErrInvalidSort       = errors.New("invalid sort specification")
)

// Backend lifecycle errors.
var (
	ErrDetached        = errors.New("backend is detached")
	ErrAlreadyAttached = errors.New("backend is already attached")
)

// Export errors.
var (
	ErrUnknownFormat = errors.New("unknown export format")
)

// ValidationError reports field-level validation failures. Fields maps a
// field name (as it appears in JSON) to a message fit for the user.
type ValidationError struct {
	Fields map[string]string
	Cause  error
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrValidation.Error()
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k])
	}
	return strings.Join(msgs, "; ")
}

// Unwrap exposes ErrValidation and, when set, the specific cause so callers
// can match either with errors.Is.
func (e *ValidationError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrValidation, e.Cause}
	}
	return []error{ErrValidation}
}

// FieldErrors returns the per-field messages carried by err, or nil when err
// is not a ValidationError.
func FieldErrors(err error) map[string]string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Fields
	}
	return nil
}
