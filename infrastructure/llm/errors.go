package llm

import (
	"context"
	"errors"
	"fmt"
)

// Common transport errors.
var (
	// ErrEmptyAPIKey indicates a missing provider credential.
	ErrEmptyAPIKey = errors.New("API key cannot be empty")

	// ErrUnknownProvider indicates an unregistered provider name.
	ErrUnknownProvider = errors.New("unknown LLM provider")

	// ErrEmptyCompletion indicates the provider returned no usable text.
	ErrEmptyCompletion = errors.New("empty completion from provider")
)

// ProviderError normalizes provider-specific failures into one shape so
// the middleware and callers can reason about retryability without
// knowing which SDK produced the error.
type ProviderError struct {
	// Provider names the backend that failed.
	Provider string

	// StatusCode is the HTTP status from the provider, when known.
	StatusCode int

	// Message is a short operator-facing description.
	Message string

	// Err is the original SDK error.
	Err error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s error (HTTP %d): %s: %v", e.Provider, e.StatusCode, e.Message, e.Err)
	}
	return fmt.Sprintf("%s error: %s: %v", e.Provider, e.Message, e.Err)
}

// Unwrap returns the original SDK error.
func (e *ProviderError) Unwrap() error { return e.Err }

// Retryable reports whether the failure is transient: rate limits,
// server-side errors, and timeouts qualify; authentication and request
// shape problems do not.
func (e *ProviderError) Retryable() bool {
	switch {
	case e.StatusCode == 429:
		return true
	case e.StatusCode >= 500:
		return true
	case errors.Is(e.Err, context.DeadlineExceeded):
		return true
	default:
		return false
	}
}

// classifyStatus builds a ProviderError from an HTTP status code.
func classifyStatus(provider string, status int, err error) *ProviderError {
	var message string
	switch {
	case status == 401 || status == 403:
		message = "authentication failed"
	case status == 429:
		message = "rate limit exceeded"
	case status == 400:
		message = "bad request"
	case status >= 500:
		message = "server error"
	default:
		message = "request failed"
	}
	return &ProviderError{Provider: provider, StatusCode: status, Message: message, Err: err}
}

// classifyContext builds a ProviderError for a context cancellation or
// deadline, keeping errors.Is(err, context.DeadlineExceeded) intact.
func classifyContext(provider string, err error) *ProviderError {
	message := "request failed"
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		message = "request timed out"
	case errors.Is(err, context.Canceled):
		message = "request canceled"
	}
	return &ProviderError{Provider: provider, Message: message, Err: err}
}
