// Package apierr provides common error types for the ServiceNow REST client.
package apierr

import (
	"errors"
	"fmt"
	"net"
	"net/http"
)

// Base errors wrapped with request-specific context by the client.
var (
	// ErrNoCredentials is returned when no usable credentials are configured.
	ErrNoCredentials = NewBaseError(ErrorCodeNoCredentials, "credentials not found")

	// ErrUnauthorized is returned when credentials are invalid or expired.
	ErrUnauthorized = NewBaseError(ErrorCodeUnauthorized, "unauthorized or expired credentials")

	// ErrRateLimited is returned when the API rate limit is exceeded.
	ErrRateLimited = NewBaseError(ErrorCodeRateLimited, "api rate limit exceeded")

	// ErrNetworkError is returned for network-related errors.
	ErrNetworkError = NewBaseError(ErrorCodeNetworkError, "network error")

	// ErrNotFound is returned when a record or attachment is not found.
	ErrNotFound = NewBaseError(ErrorCodeNotFound, "resource not found")
)

// ErrorCode categorizes errors.
type ErrorCode int

const (
	ErrorCodeUnknown ErrorCode = iota
	ErrorCodeNoCredentials
	ErrorCodeUnauthorized
	ErrorCodeRateLimited
	ErrorCodeNetworkError
	ErrorCodeNotFound
)

// BaseError is a typed error that can be identified by code.
type BaseError struct {
	Msg  string
	Code ErrorCode
}

func (e *BaseError) Error() string {
	return e.Msg
}

// NewBaseError creates a new BaseError with the given code and message.
func NewBaseError(code ErrorCode, msg string) error {
	return &BaseError{Code: code, Msg: msg}
}

// IsNoCredentials returns true if err is or wraps ErrNoCredentials.
func IsNoCredentials(err error) bool {
	return errors.Is(err, ErrNoCredentials)
}

// IsUnauthorized returns true if err is or wraps ErrUnauthorized.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsRateLimited returns true if err is or wraps ErrRateLimited.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsNetworkError returns true if err is or wraps ErrNetworkError.
func IsNetworkError(err error) bool {
	return errors.Is(err, ErrNetworkError)
}

// IsNotFound returns true if err is or wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// WrapHTTPError converts HTTP status codes and network failures to typed errors.
// Errors without a recognizable status code are returned as-is.
func WrapHTTPError(err error) error {
	if err == nil {
		return nil
	}

	// Check for network errors first
	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", ErrNetworkError, err)
	}

	var httpErr interface{ HTTPStatusCode() int }
	if !errors.As(err, &httpErr) {
		return err
	}

	switch httpErr.HTTPStatusCode() {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	default:
		return err
	}
}
