// Package common defines the error taxonomy and small helpers shared by the
// CaseDesk client layers. Callers should use errors.Is / errors.As to match.
package common

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrValidation marks malformed input rejected before any I/O.
	ErrValidation = errors.New("validation error")

	// ErrNetwork marks a non-2xx response from the remote service.
	ErrNetwork = errors.New("network error")

	// ErrTimeout marks a request that got no response within its budget.
	ErrTimeout = errors.New("request timeout")

	// ErrNoBackend is returned by the gateway when no base address is configured.
	ErrNoBackend = errors.New("no backend configured")

	// ErrAuth marks an auth response without a usable token or user.
	ErrAuth = errors.New("invalid auth response")

	// ErrStorage marks a failure of the local persistence medium.
	ErrStorage = errors.New("storage error")

	// ErrNotFound is used by local repositories for missing records.
	ErrNotFound = errors.New("not found")
)

// StatusError carries an HTTP-analogous status next to a human readable
// message. Kind is one of ErrNetwork, ErrTimeout or ErrNoBackend.
type StatusError struct {
	Kind    error
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return e.Message
}

func (e *StatusError) Unwrap() error {
	return e.Kind
}

// NewNetworkError builds the error for a non-2xx response. An empty message
// falls back to "HTTP <status>".
func NewNetworkError(status int, message string) *StatusError {
	if message == "" {
		message = fmt.Sprintf("HTTP %d", status)
	}
	return &StatusError{Kind: ErrNetwork, Status: status, Message: message}
}

// NewTransportError wraps a failure to get any response at all (refused
// connection, DNS, TLS). Status is 0 and Kind is ErrNetwork.
func NewTransportError(err error) *StatusError {
	return &StatusError{Kind: ErrNetwork, Status: 0, Message: "request failed: " + err.Error()}
}

// NewTimeoutError builds the 408 error returned when a request budget expires.
func NewTimeoutError() *StatusError {
	return &StatusError{Kind: ErrTimeout, Status: http.StatusRequestTimeout, Message: "request timed out"}
}

// NewNoBackendError builds the status 0 error used when no remote is configured.
func NewNoBackendError() *StatusError {
	return &StatusError{Kind: ErrNoBackend, Status: 0, Message: "no backend configured"}
}

// ValidationError is an input error whose message is shown to the user verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Validation returns a *ValidationError with the given message.
func Validation(message string) error {
	return &ValidationError{Message: message}
}

// Storage wraps a persistence failure so that errors.Is(err, ErrStorage) holds.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}

// StatusOf reports the status carried by err, if any.
func StatusOf(err error) (int, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status, true
	}
	return 0, false
}
