// Package common defines shared constants and sentinel errors used across
// client and server layers of indexkeeper. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Precondition errors surfaced by the index set service.
	ErrorConflict   = errors.New("id mismatch between path and payload")
	ErrorBadRequest = errors.New("bad request")
	ErrorValidation = errors.New("validation error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Job scheduling errors. Callers of Submit should treat this as a
	// non-fatal condition; it is never surfaced to API clients.
	ErrConcurrencyLimit = errors.New("maximum concurrency reached for job class")
)
