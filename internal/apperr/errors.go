// Package apperr classifies failures so the HTTP boundary can map them to
// status codes without inspecting message text.
package apperr

import (
	"errors"
	"net/http"
)

// Error kinds. Match them with errors.Is.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrUpstream   = errors.New("upstream fetch error")
	ErrStorage    = errors.New("storage error")
)

// Error pairs a kind with a client-safe message and the underlying cause.
type Error struct {
	kind  error
	msg   string
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	if e.cause != nil {
		return []error{e.kind, e.cause}
	}
	return []error{e.kind}
}

// Validation reports a missing or malformed request parameter.
func Validation(msg string) error { return &Error{kind: ErrValidation, msg: msg} }

// NotFound reports that the addressed record does not exist.
func NotFound(msg string) error { return &Error{kind: ErrNotFound, msg: msg} }

// Upstream wraps a failure fetching or decoding the external feed.
func Upstream(msg string, cause error) error {
	return &Error{kind: ErrUpstream, msg: msg, cause: cause}
}

// Storage wraps a query execution failure.
func Storage(msg string, cause error) error {
	return &Error{kind: ErrStorage, msg: msg, cause: cause}
}

// Status maps an error to the HTTP status code returned to the client.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the text shown to the client. Internal failures never leak
// their cause; fallback is used instead.
func Message(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) && (e.kind == ErrValidation || e.kind == ErrNotFound) {
		return e.msg
	}
	return fallback
}

// IsClientError reports whether err is the caller's fault (4xx).
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrNotFound)
}
