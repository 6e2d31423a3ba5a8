// Package apierror provides standardized error types and response structures
// for the API. All errors returned to clients go through this package to ensure
// consistency and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import (
	"errors"
	"net/http"
)

// Kind classifies an error into one of the API's failure categories.
type Kind int

const (
	KindValidation Kind = iota // missing/malformed field, illegal state transition
	KindConflict               // duplicate unique key (numero de serie, username, email…)
	KindNotFound               // referenced pieza/usuario does not exist
	KindAuthentication         // bad credentials or inactive account
	KindAuthorization          // role lacks permission
	KindDataAccess             // store unreachable or query failure
)

// Error is the typed error services return. Handlers map it to a status code
// via Status(); the wrapped cause is logged but never serialized.
type Error struct {
	Kind   Kind
	Detail string
	Err    error
}

func (e *Error) Error() string { return e.Detail }
func (e *Error) Unwrap() error { return e.Err }

// Status maps the error kind to its HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func Validation(detail string) *Error { return &Error{Kind: KindValidation, Detail: detail} }
func Conflict(detail string) *Error   { return &Error{Kind: KindConflict, Detail: detail} }
func NotFound(detail string) *Error   { return &Error{Kind: KindNotFound, Detail: detail} }

func Authentication(detail string) *Error {
	return &Error{Kind: KindAuthentication, Detail: detail}
}

func Authorization(detail string) *Error {
	return &Error{Kind: KindAuthorization, Detail: detail}
}

// DataAccess wraps a store-level failure. The cause is kept for logging only.
func DataAccess(detail string, err error) *Error {
	return &Error{Kind: KindDataAccess, Detail: detail, Err: err}
}

// From returns err as an *Error, wrapping unclassified errors as DataAccess so
// that no raw failure ever reaches a client unfiltered.
func From(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return DataAccess("Error interno del servidor", err)
}

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}
