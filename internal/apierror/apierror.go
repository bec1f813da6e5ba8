// Package apierror provides standardized error response structures for the API
// and the typed error kinds services use to report failures.
// All errors returned to clients go through this package to ensure consistency.
package apierror

import (
	"errors"
	"net/http"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Status int    `json:"status"`
	Error  string `json:"error"`
}

func New(status int, msg string) *APIError {
	return &APIError{Status: status, Error: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Status int               `json:"status"`
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Status: http.StatusBadRequest, Error: "Error de validacion", Fields: fields}
}

// Kind classifies a service failure. The zero value is never produced by
// this package and maps to 500.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindStore
	KindCredential
	KindTokenInvalid
	KindUnauthorized
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindStore:
		return "store"
	case KindCredential:
		return "credential"
	case KindTokenInvalid:
		return "token_invalid"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

// Error is the failure variant every service operation returns.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(msg string) *Error   { return &Error{Kind: KindValidation, Msg: msg} }
func NotFound(msg string) *Error     { return &Error{Kind: KindNotFound, Msg: msg} }
func TokenInvalid(msg string) *Error { return &Error{Kind: KindTokenInvalid, Msg: msg} }
func Unauthorized(msg string) *Error { return &Error{Kind: KindUnauthorized, Msg: msg} }
func Forbidden(msg string) *Error    { return &Error{Kind: KindForbidden, Msg: msg} }

// Store wraps an underlying persistence failure.
func Store(msg string, err error) *Error {
	return &Error{Kind: KindStore, Msg: msg, Err: err}
}

// Credential wraps an identity provider rejection.
func Credential(msg string, err error) *Error {
	return &Error{Kind: KindCredential, Msg: msg, Err: err}
}

// KindOf returns the kind of err, or 0 when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// StatusOf maps an error to the HTTP status the boundary layer must answer with.
func StatusOf(err error) int {
	switch KindOf(err) {
	case KindValidation, KindTokenInvalid:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// FromError builds the response envelope for err. Store and credential
// failures carry the provider message through.
func FromError(err error) *APIError {
	return New(StatusOf(err), err.Error())
}
