// Package apperr defines the closed error taxonomy shared by every layer of
// the request pipeline. Handlers and stores return *Error values (or wrap
// sentinel causes into them); the HTTP boundary matches on Kind exactly once
// to pick a status code and a safe client message.
package apperr

import (
	"errors"
	"fmt"
)

// Kind identifies the failure class of an Error. The set is closed: any
// error that does not carry a Kind is treated as KindInternal at the
// boundary.
type Kind int

const (
	// KindAuth covers missing, malformed, or rejected credentials (HTTP 401).
	KindAuth Kind = iota + 1
	// KindValidation covers schema or business-rule violations (HTTP 400).
	KindValidation
	// KindNotFound covers missing entities and unmatched routes (HTTP 404).
	KindNotFound
	// KindConflict covers uniqueness violations (HTTP 409).
	KindConflict
	// KindInternal is the catch-all for unexpected failures (HTTP 500).
	KindInternal
)

// String returns the kind's name for logging.
func (k Kind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// FieldError describes a single violated constraint on one input field.
// The validation package produces ordered lists of these; both of its call
// conventions must yield identical lists for identical input.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error is the taxonomy member carried up the call chain.
//
// Message is safe to show to the caller when Operational is true. When
// Operational is false the boundary logs the full (redacted) detail and the
// client receives a generic message instead.
type Error struct {
	Kind        Kind
	Message     string
	Operational bool
	Fields      []FieldError
	Err         error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the wrapped cause to support errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an operational Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message, Operational: kind != KindInternal}
}

// Wrap creates an Error of the given kind around a cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Operational: kind != KindInternal, Err: err}
}

// Validation creates a KindValidation Error carrying the ordered field-error
// list produced by the input validator.
func Validation(fields []FieldError) *Error {
	return &Error{
		Kind:        KindValidation,
		Message:     "validation failed",
		Operational: true,
		Fields:      fields,
	}
}

// Internal wraps an unexpected failure. The message is for logs; the client
// never sees it.
func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf extracts the Kind from an error chain. Errors outside the taxonomy
// report KindInternal, which the boundary sanitizes.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// FieldsOf extracts the field-error list from an error chain, or nil when
// the error carries none.
func FieldsOf(err error) []FieldError {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Fields
	}
	return nil
}

// IsOperational reports whether the error's message is safe to return to the
// caller. Errors outside the taxonomy are never operational.
func IsOperational(err error) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Operational
	}
	return false
}
