package feed

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is the structured failure every public operation returns: an
// HTTP-style status code plus a human-readable message. Nothing in this
// package panics across its boundary; callers inspect the returned error.
type Error struct {
	// Code is the HTTP-style status of the failure.
	Code int

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}

// AsError coerces any error to *Error. Errors that did not originate in this
// package are reported as internal failures.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Code: http.StatusInternalServerError, Message: err.Error()}
}

func errNotFound(message string) *Error {
	return &Error{Code: http.StatusNotFound, Message: message}
}

func errUnauthorized() *Error {
	return &Error{Code: http.StatusUnauthorized, Message: "Not Authorized"}
}

func errInvalidUser() *Error {
	return &Error{Code: http.StatusForbidden, Message: "Not a valid user"}
}

func errPageRange() *Error {
	return &Error{Code: http.StatusNotFound, Message: "Page number exceeds maximum pages"}
}

func errStorage(code int, err error) *Error {
	return &Error{Code: code, Message: err.Error()}
}
