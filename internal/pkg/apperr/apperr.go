// Package apperr carries structured errors across the HTTP boundary.
package apperr

import (
	"errors"
	"net/http"
)

// Error pairs an HTTP status with a stable machine-readable code. The
// message is safe to show to the caller; provider internals never end up
// here.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

// New builds an Error with the given status, code and caller-safe message.
func New(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

// From extracts an *Error from err, or wraps unknown errors as a generic
// internal error so raw details do not leak to the caller.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return New(http.StatusInternalServerError, "internal", "internal error")
}
