package salesforce

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid salesforce configuration")
	// ErrNoSession indicates an operation was invoked before login
	ErrNoSession = errors.New("no active session")
)

// ArgumentError indicates a caller-supplied parameter was invalid and the
// request was never sent.
type ArgumentError struct {
	Param   string
	Value   string
	Message string
	Cause   error
}

// Error implements the error interface
func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %q: %s", e.Param, e.Message)
}

// Unwrap returns the underlying cause, if any
func (e *ArgumentError) Unwrap() error {
	return e.Cause
}

// AuthError indicates the login handshake failed, either at the transport
// layer or because the credentials were rejected.
type AuthError struct {
	StatusCode int
	Message    string
	Cause      error
}

// Error implements the error interface
func (e *AuthError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("salesforce login failed: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("salesforce login failed: %s", e.Message)
}

// Unwrap returns the underlying cause, if any
func (e *AuthError) Unwrap() error {
	return e.Cause
}

// PreconditionError indicates an operation other than login was invoked
// before a session existed. No network call is made.
type PreconditionError struct {
	Op string
}

// Error implements the error interface
func (e *PreconditionError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: no active session, call Login first", e.Op)
	}
	return "no active session, call Login first"
}

// Unwrap allows errors.Is(err, ErrNoSession)
func (e *PreconditionError) Unwrap() error {
	return ErrNoSession
}

// TransportError indicates a network, TLS, or timeout failure at the HTTP
// layer. The remote service never produced a response.
type TransportError struct {
	Op    string
	Cause error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: request failed: %v", e.Op, e.Cause)
}

// Unwrap returns the underlying transport failure
func (e *TransportError) Unwrap() error {
	return e.Cause
}

// APIError represents a failure response from the Salesforce API
type APIError struct {
	StatusCode int
	Message    string
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("salesforce API error: status %d: %s", e.StatusCode, e.Message)
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == 404
}

// IsUnauthorized checks if the error indicates an expired or rejected token
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}
