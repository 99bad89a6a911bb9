package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized matches an *HTTPError for a 401 on an authenticated
	// request. Coordinator resolves it; it never reaches Send callers.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrSessionExpired means the refresh attempt failed and the session
	// was cleared. The user has to log in again.
	ErrSessionExpired = errors.New("session expired, please login again")
	// ErrMalformedBody is wrapped in a *TransportError when a response body
	// is not valid JSON.
	ErrMalformedBody = errors.New("malformed response body")
)

// DefaultErrorMessage is used when an error body has neither "error" nor
// "message".
const DefaultErrorMessage = "Request failed"

// TransportError means no usable response was received.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// HTTPError is a non-2xx response.
type HTTPError struct {
	Status  int
	Message string

	authFailure bool
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// Is makes a 401 on an authenticated request match ErrUnauthorized.
func (e *HTTPError) Is(target error) bool {
	return target == ErrUnauthorized && e.authFailure
}

// settled returns a copy that no longer matches ErrUnauthorized.
func (e *HTTPError) settled() *HTTPError {
	return &HTTPError{Status: e.Status, Message: e.Message}
}
