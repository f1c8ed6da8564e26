// Package apperr defines the error taxonomy shared across snipframe
// services and its mapping onto HTTP status codes at the API boundary.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Kind classifies an application error.
type Kind string

const (
	KindValidation      Kind = "validation"
	KindImageGeneration Kind = "image_generation"
	KindStorage         Kind = "storage"
	KindRateLimit       Kind = "rate_limit"
	KindTimeout         Kind = "timeout"
	KindNotFound        Kind = "not_found"
	KindExpired         Kind = "expired"
	KindBusy            Kind = "busy"
	KindSession         Kind = "session"
	KindTheme           Kind = "theme"
	KindInternal        Kind = "internal"
)

// Error is a classified application error. RetryAfter is only set for
// rate-limit denials and carries the configured retry hint.
type Error struct {
	Kind       Kind
	Message    string
	RetryAfter time.Duration
	cause      error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Validation builds a non-retryable bad-input error.
func Validation(format string, args ...interface{}) *Error {
	return newError(KindValidation, format, args...)
}

// ImageGeneration builds a retryable pipeline/adapter failure.
func ImageGeneration(format string, args ...interface{}) *Error {
	return newError(KindImageGeneration, format, args...)
}

// Storage builds a persistence/read/delete failure.
func Storage(format string, args ...interface{}) *Error {
	return newError(KindStorage, format, args...)
}

// RateLimited builds a rate-limit denial with the configured retry hint.
func RateLimited(retryAfter time.Duration, format string, args ...interface{}) *Error {
	err := newError(KindRateLimit, format, args...)
	err.RetryAfter = retryAfter
	return err
}

// Timeout builds a retryable adapter timeout.
func Timeout(format string, args ...interface{}) *Error {
	return newError(KindTimeout, format, args...)
}

// NotFound builds a lookup miss.
func NotFound(format string, args ...interface{}) *Error {
	return newError(KindNotFound, format, args...)
}

// Expired builds an artifact-lapsed error, distinct from NotFound.
func Expired(format string, args ...interface{}) *Error {
	return newError(KindExpired, format, args...)
}

// Busy builds an admission-control rejection.
func Busy(format string, args ...interface{}) *Error {
	return newError(KindBusy, format, args...)
}

// Session builds a session-state error.
func Session(format string, args ...interface{}) *Error {
	return newError(KindSession, format, args...)
}

// Theme builds a theme catalog/validation error.
func Theme(format string, args ...interface{}) *Error {
	return newError(KindTheme, format, args...)
}

// Internal builds an unclassified internal error.
func Internal(format string, args ...interface{}) *Error {
	return newError(KindInternal, format, args...)
}

// Wrap attaches a cause to err and returns it.
func (e *Error) Wrap(cause error) *Error {
	e.cause = cause
	return e
}

// KindOf extracts the Kind from err, or KindInternal when err is not
// an *Error.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// Retryable reports whether err is worth retrying. Only adapter
// failures and timeouts qualify.
func Retryable(err error) bool {
	switch KindOf(err) {
	case KindImageGeneration, KindTimeout:
		return true
	}
	return false
}

// HTTPStatus maps err onto the status code the REST boundary returns.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation, KindTheme:
		return http.StatusBadRequest
	case KindNotFound, KindSession:
		return http.StatusNotFound
	case KindExpired:
		return http.StatusGone
	case KindRateLimit:
		return http.StatusTooManyRequests
	case KindBusy:
		return http.StatusServiceUnavailable
	case KindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
