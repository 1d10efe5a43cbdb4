package admin

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	// ErrNotFound is returned when an id does not resolve to a record.
	ErrNotFound = errors.New("admin: record not found")
	// ErrNoPendingDelete is returned when confirming without an open dialog for that id.
	ErrNoPendingDelete = errors.New("admin: no pending delete for record")
	// ErrClosed is returned by collections after Close.
	ErrClosed = errors.New("admin: collection closed")
	// ErrUnknownCollection is returned for collection names outside the seed document.
	ErrUnknownCollection = errors.New("admin: unknown collection")
)

// FieldErrors maps form field names to the message shown next to them.
type FieldErrors map[string]string

// ValidationError blocks a create or edit.
type ValidationError struct {
	Collection string
	Fields     FieldErrors
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "admin: validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return fmt.Sprintf("admin: invalid %s: %s", e.Collection, strings.Join(parts, "; "))
}

// AsValidationError unwraps a *ValidationError from err.
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

func newValidationError(collection string, errs validation.Errors) error {
	fields := FieldErrors{}
	for field, err := range errs {
		if err == nil {
			continue
		}
		fields[field] = err.Error()
	}
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Collection: collection, Fields: fields}
}

// duplicateError replaces any earlier error on the field.
func duplicateError(message string) validation.Error {
	return validation.NewError("validation_duplicate", message)
}

func sameFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
