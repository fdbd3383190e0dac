package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

type (
	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input
	ValidationError struct {
		Message string
	}
)

func (e *NotFoundError) Error() string   { return e.Message }
func (e *ValidationError) Error() string { return e.Message }

func (e *NotFoundError) StatusCode() int   { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int { return http.StatusBadRequest }

// Is lets errors.Is match the sentinel values below.
func (e *NotFoundError) Is(target error) bool   { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrUpstream   = errors.New("upstream provider failed")
)

// UpstreamError wraps a failure reported by the LLM provider.
// Message is the operation-level text ("failed to summarize text: ...") and
// Cause is the original provider error.
type UpstreamError struct {
	Message string
	Cause   error
}

// NewUpstreamError builds an UpstreamError whose message is "<action>: <cause>".
func NewUpstreamError(action string, cause error) *UpstreamError {
	msg := action
	if cause != nil {
		msg = action + ": " + cause.Error()
	}
	return &UpstreamError{Message: msg, Cause: cause}
}

func (e *UpstreamError) Error() string   { return e.Message }
func (e *UpstreamError) Unwrap() error   { return e.Cause }
func (e *UpstreamError) StatusCode() int { return http.StatusInternalServerError }

// Is allows errors.Is() to match against ErrUpstream
func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}

// StatusCode returns the HTTP status for err, defaulting to 500.
func StatusCode(err error) int {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode()
	}
	return http.StatusInternalServerError
}
