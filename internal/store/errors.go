package store

import (
	"fmt"
	"net/http"
)

// Error is a persistence error carrying the HTTP status it maps to.
type Error struct {
	Code    int    // HTTP status code
	Message string // User-facing message
	Err     error  // Underlying driver error (optional)
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error with the same code and message, so wrapped
// copies made by WithCause still satisfy errors.Is against the sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code && t.Message == e.Message
}

// HTTPCode returns the HTTP status code associated with this error.
func (e *Error) HTTPCode() int { return e.Code }

// WithMessage returns a new error with a custom message. The result no
// longer matches the sentinel by errors.Is; use it for terminal messages only.
func (e *Error) WithMessage(msg string) *Error {
	return &Error{Code: e.Code, Message: msg, Err: e.Err}
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{Code: e.Code, Message: e.Message, Err: err}
}

// Sentinel errors.
var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = &Error{Code: http.StatusNotFound, Message: "resource not found"}

	// ErrAlreadyExists is the uniqueness violation: an insert or update
	// collided with an existing unique key such as a slug.
	ErrAlreadyExists = &Error{Code: http.StatusConflict, Message: "resource already exists"}

	// ErrForeignKey is returned when a write references a missing parent row.
	ErrForeignKey = &Error{Code: http.StatusConflict, Message: "referenced resource does not exist"}

	// ErrInvalidInput is returned when a write violates a CHECK constraint.
	ErrInvalidInput = &Error{Code: http.StatusBadRequest, Message: "invalid input"}
)
