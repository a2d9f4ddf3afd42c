package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrUserNotFound       = errors.New("user not found")
	ErrPasswordTooLong    = errors.New("password exceeds 72 bytes")

	// ErrUpstream marks a failed call to an external service whose failure
	// is surfaced to the client.
	ErrUpstream = errors.New("upstream service error")
	// ErrNotConfigured marks a missing credential for an external service.
	ErrNotConfigured = errors.New("service not configured")
	// ErrUpstreamDegraded accompanies a fallback value returned in place of
	// a failed AI call. The fallback is still safe to present.
	ErrUpstreamDegraded = errors.New("upstream degraded")
)
