package capi

import (
	"errors"
	"fmt"
)

// ProtocolError reports an unexpected response from the control plane or the
// identity service. It is never retried beyond the single built-in
// re-login.
type ProtocolError struct {
	Method     string
	URL        string
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *ProtocolError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("unexpected response from %s %s: %s", e.Method, e.URL, e.Message)
	}

	return fmt.Sprintf("unexpected response code from %s %s is %d, message %s", e.Method, e.URL, e.StatusCode, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// AuthenticationError reports that the identity service rejected a login.
type AuthenticationError struct {
	URL        string
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("login to %s failed with response code %d, message %s", e.URL, e.StatusCode, e.Message)
}

// NotFoundError reports that a human-meaningful name did not resolve to a resource.
type NotFoundError struct {
	Kind string
	Name string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}

// Common static errors that can be wrapped with context.
var (
	ErrConfigRequired       = errors.New("config is required")
	ErrAPIEndpointRequired  = errors.New("API endpoint is required")
	ErrCredentialsRequired  = errors.New("username and password are required")
	ErrStatusSourceRequired = errors.New("runtime status source is required")
	ErrSkipTLSOnlyInDev     = errors.New("skipTLS is only allowed in development environments")
	ErrUnsupportedCommand   = errors.New("unsupported command")
	ErrDiscoveryFailed      = errors.New("unable to fetch info")
	ErrMissingEndpoint      = errors.New("info does not include endpoint")
	ErrPaginationCycle      = errors.New("pagination returned an already fetched page")
	ErrPaginationStalled    = errors.New("pagination returned an empty page before the total was reached")
)

// IsProtocolError checks if the error is a protocol error.
func IsProtocolError(err error) bool {
	protoErr := &ProtocolError{}

	return errors.As(err, &protoErr)
}

// IsAuthenticationError checks if the error is a rejected login.
func IsAuthenticationError(err error) bool {
	authErr := &AuthenticationError{}

	return errors.As(err, &authErr)
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	notFound := &NotFoundError{}

	return errors.As(err, &notFound)
}

// StatusCode returns the HTTP status carried by a protocol or authentication
// error, or zero.
func StatusCode(err error) int {
	protoErr := &ProtocolError{}
	if errors.As(err, &protoErr) {
		return protoErr.StatusCode
	}

	authErr := &AuthenticationError{}
	if errors.As(err, &authErr) {
		return authErr.StatusCode
	}

	return 0
}
