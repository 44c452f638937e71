// Package domainerrors provides coded errors for domain operations. Services
// return these and the HTTP boundary translates codes to status responses,
// keeping stringly-typed detail text out of business logic.
package domainerrors

import (
	"errors"
	"net/http"
)

// Code identifies the class of a domain failure.
type Code string

const (
	CodeNotFound          Code = "not_found"
	CodeAlreadyRegistered Code = "already_registered"
	CodeNotRegistered     Code = "not_registered"
	CodeActivityFull      Code = "activity_full"
	CodeBadRequest        Code = "bad_request"
	CodeInternal          Code = "internal_error"
)

// Error carries a code plus a human-readable detail message suitable for the
// response body.
type Error struct {
	Code   Code
	Detail string
}

func (e *Error) Error() string {
	return string(e.Code) + ": " + e.Detail
}

// New builds a coded domain error.
func New(code Code, detail string) *Error {
	return &Error{Code: code, Detail: detail}
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal for errors
// that did not originate in the domain layer.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// DetailOf extracts the detail message, hiding internals behind a generic
// message for non-domain errors.
func DetailOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Detail
	}
	return "internal server error"
}

// ToHTTPStatus maps a domain code onto the HTTP status the API contract
// requires: unknown activity is 404, every other rejection is 400.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeAlreadyRegistered, CodeNotRegistered, CodeActivityFull, CodeBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
