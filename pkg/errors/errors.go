package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Standard error types
var (
	ErrAuthentication = errors.New("authentication error")
	ErrConfiguration  = errors.New("configuration error")
	ErrHTTPRequest    = errors.New("HTTP request error")
	ErrHTTPResponse   = errors.New("HTTP response error")
	ErrPagination     = errors.New("pagination error")
	ErrExtraction     = errors.New("data extraction error")
	ErrTokenExpired   = errors.New("token expired")
	ErrValidation     = errors.New("validation error")
)

// ErrExhausted is returned when a pager is asked for a page after the last one.
var ErrExhausted = fmt.Errorf("%w: no more results available", ErrPagination)

// WrapError wraps an error with a standard error type. Both the type and the
// original error stay reachable through errors.Is / errors.As.
func WrapError(err error, errType error, message string) error {
	return fmt.Errorf("%w: %s: %w", errType, message, err)
}

// Is provides a convenience wrapper around errors.Is
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As provides a convenience wrapper around errors.As
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Unwrap provides a convenience wrapper around errors.Unwrap
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// RequestError describes a failed call to the service, either a transport
// failure (Err set, StatusCode zero) or a non-2xx response.
type RequestError struct {
	Operation  string
	StatusCode int
	Status     string
	Body       []byte
	Headers    http.Header
	Err        error
}

func (e *RequestError) Error() string {
	var b strings.Builder
	if e.Operation != "" {
		b.WriteString(e.Operation)
		b.WriteString(": ")
	}
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, "HTTP %d", e.StatusCode)
		if body := strings.TrimSpace(string(e.Body)); body != "" {
			if len(body) > 512 {
				body = body[:512] + "..."
			}
			b.WriteString(": ")
			b.WriteString(body)
		}
		if e.Err != nil {
			b.WriteString(": ")
			b.WriteString(e.Err.Error())
		}
		return b.String()
	}
	if e.Err != nil {
		b.WriteString(e.Err.Error())
	} else {
		b.WriteString("request failed")
	}
	return b.String()
}

// Unwrap exposes the cause. Status failures without a cause unwrap to
// ErrHTTPResponse, transport failures always sit under ErrHTTPRequest.
func (e *RequestError) Unwrap() []error {
	if e.StatusCode != 0 {
		if e.Err != nil {
			return []error{ErrHTTPResponse, e.Err}
		}
		return []error{ErrHTTPResponse}
	}
	if e.Err != nil {
		return []error{ErrHTTPRequest, e.Err}
	}
	return []error{ErrHTTPRequest}
}

// IsRetryable reports whether repeating the same request could succeed.
func (e *RequestError) IsRetryable() bool {
	if e.StatusCode == 0 {
		return true
	}
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// NewRequestError wraps a transport-level failure.
func NewRequestError(operation string, err error) *RequestError {
	return &RequestError{Operation: operation, Err: err}
}
