// Package apperror holds the error taxonomy shared by the repositories, services and the HTTP gateway.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind is the category of an application error.
type Kind string

const (
	// KindValidation is malformed or missing input. Always client-correctable.
	KindValidation Kind = "VALIDATION_ERROR"

	// KindNotFound is a referenced document, association or target that is absent or not accessible.
	KindNotFound Kind = "NOT_FOUND"

	// KindUpstream is an unexpected failure of the backing store, network or a dependency.
	KindUpstream Kind = "UPSTREAM_ERROR"

	// KindRender is a content-layer failure (markdown parse). Recovered locally.
	KindRender Kind = "RENDER_ERROR"
)

// AppError carries a Kind, a client-facing message and an optional cause.
type AppError struct {
	Kind    Kind
	Message string
	Cause   error
}

// Sentinels for errors.Is comparisons. Only the Kind is compared.
var (
	ErrValidation = &AppError{Kind: KindValidation}
	ErrNotFound   = &AppError{Kind: KindNotFound}
	ErrUpstream   = &AppError{Kind: KindUpstream}
	ErrRender     = &AppError{Kind: KindRender}
)

func (e *AppError) Error() string {
	if e.Cause != nil {
		if e.Message == "" {
			return e.Cause.Error()
		}
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches another *AppError of the same kind. A target with a message must match it exactly.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && (t.Message == "" || t.Message == e.Message)
}

func Validation(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Upstream wraps a store or network failure. The message is passed through to clients unchanged.
func Upstream(cause error, format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindUpstream, Message: fmt.Sprintf(format, args...), Cause: cause}
}

func Render(cause error, format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindRender, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// KindOf returns the Kind of err, or KindUpstream for errors outside the taxonomy.
func KindOf(err error) Kind {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUpstream
}

// StatusCode maps an error to an HTTP status.
// Validation -> 400, NotFound -> 404. Any other error whose message says "not found" or
// "not accessible" is also a 404; everything else is a 500.
func StatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var ae *AppError
	if errors.As(err, &ae) {
		switch ae.Kind {
		case KindValidation:
			return http.StatusBadRequest
		case KindNotFound:
			return http.StatusNotFound
		}
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "not found") || strings.Contains(msg, "not accessible") {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
