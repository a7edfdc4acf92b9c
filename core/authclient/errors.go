package authclient

import (
	"errors"
	"fmt"
)

var (
	// ErrRequest is returned when the login request cannot be built or sent.
	ErrRequest = errors.New("login request failed")
	// ErrRejected is returned for any non-2xx login response.
	ErrRejected = errors.New("login rejected")
	// ErrMalformedResponse is returned when a 2xx body lacks a token or role.
	ErrMalformedResponse = errors.New("malformed login response")
)

// StatusError carries the status and message of a rejected login.
// It matches ErrRejected with errors.Is.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("login rejected: status %d", e.Code)
	}
	return fmt.Sprintf("login rejected: status %d: %s", e.Code, e.Message)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrRejected
}
