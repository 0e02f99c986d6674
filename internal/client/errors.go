package client

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidEndpoint is returned when the endpoint is not an absolute
	// http or https URL.
	ErrInvalidEndpoint = errors.New("invalid endpoint: expected an absolute http(s) URL")

	// ErrInvalidProxyAddress is returned when the proxy address format is
	// invalid. Expected format is "host:port".
	ErrInvalidProxyAddress = errors.New("invalid proxy address format: expected host:port")

	// ErrBodyTooLarge is returned when a response body exceeds the
	// configured limit.
	ErrBodyTooLarge = errors.New("response body too large")
)

// APIError is a non-2xx response from the backend.
// Its message is the backend's detail, or the default failure message.
type APIError struct {
	// StatusCode is the HTTP status returned by the backend.
	StatusCode int

	// Message is the text shown to the user.
	Message string
}

// Error returns the message alone so that it can be shown verbatim.
func (e *APIError) Error() string {
	return e.Message
}

// JSONError is returned when a response body is not valid JSON.
type JSONError struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int

	// Err is the underlying decode error.
	Err error
}

// Error describes the decode failure.
func (e *JSONError) Error() string {
	return fmt.Sprintf("invalid JSON in response (status %d): %v", e.StatusCode, e.Err)
}

// Unwrap returns the decode error.
func (e *JSONError) Unwrap() error {
	return e.Err
}

// HealthStatus is the result of a backend health check.
type HealthStatus int

const (
	// HealthOK indicates the backend answered {"status": "ok"}.
	HealthOK HealthStatus = iota

	// HealthUnhealthy indicates the backend answered with a non-2xx status or
	// an unexpected body.
	HealthUnhealthy

	// HealthUnreachable indicates the request never got a response.
	HealthUnreachable
)

var (
	// ErrUnhealthy is returned for HealthUnhealthy.
	ErrUnhealthy = errors.New("backend is unhealthy")

	// ErrUnreachable is returned for HealthUnreachable.
	ErrUnreachable = errors.New("backend is unreachable")
)

// String returns a human-readable description of the status.
func (s HealthStatus) String() string {
	switch s {
	case HealthOK:
		return "OK"
	case HealthUnhealthy:
		return "unhealthy"
	case HealthUnreachable:
		return "unreachable"
	default:
		return "unknown"
	}
}

// Error returns the error matching this status, or nil if OK.
func (s HealthStatus) Error() error {
	switch s {
	case HealthOK:
		return nil
	case HealthUnhealthy:
		return ErrUnhealthy
	case HealthUnreachable:
		return ErrUnreachable
	default:
		return errors.New("unknown health status")
	}
}
