// Package apierrors defines the error taxonomy of the HTTP API.
//
// Validation and conflict failures carry field-scoped messages and map to
// 400; the sentinels map to 401/403/404; DeliveryError maps to 500.
// Handlers translate with errors.Is / errors.As instead of matching error
// strings.
package apierrors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// NonFieldErrors is the key used for cross-field validation messages.
const NonFieldErrors = "non_field_errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("authentication required")
	ErrForbidden    = errors.New("you do not have permission to perform this action")
)

// FieldErrors maps a field name to the validation messages recorded for
// it. It marshals directly into the 400 response body.
type FieldErrors map[string][]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e[k], "; ")))
	}
	return strings.Join(parts, ", ")
}

// Add records a message for the given field.
func (e FieldErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// NewFieldError builds a FieldErrors with a single message.
func NewFieldError(field, message string) FieldErrors {
	return FieldErrors{field: []string{message}}
}

// DeliveryError marks a failed outbound email. The confirmation code it
// was supposed to carry stays persisted and valid.
type DeliveryError struct {
	Err error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("failed to send confirmation code: %v", e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }
