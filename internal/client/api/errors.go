package api

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotLoggedIn  = errors.New("not logged in")
)

// StatusError is a non-2xx response. Message is the plain-text body.
type StatusError struct {
	Code    int
	Message string
	wrapped error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}

func (e *StatusError) Unwrap() error { return e.wrapped }
