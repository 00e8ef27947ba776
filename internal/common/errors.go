// Package common defines shared constants and sentinel errors used across
// client and server layers of ledgerkeeper. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound     = errors.New("not found")
	ErrDuplicateEmail = errors.New("user already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal         = errors.New("internal error")
	ErrorUnauthorized     = errors.New("unauthorized")
	ErrUnauthenticated    = ErrorUnauthorized
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Reserved for request field validation.
	ErrValidation = errors.New("validation error")

	// Auth errors (missing, invalid or malformed token).
	ErrMissingToken = errors.New("missing token")
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
)
