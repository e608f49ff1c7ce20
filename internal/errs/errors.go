// Package errs defines the error kinds the service is allowed to surface.
// Handlers map these to HTTP status codes; everything else collapses to a
// generic 500 so internal detail never leaks to the client.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized means no identity could be resolved for the request,
	// or the resolved identity is not allowed to perform the operation.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound covers both an unknown short key and an owner-scoped miss.
	// The two cases are intentionally indistinguishable to the caller.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateKey is returned by the store when an insert loses the
	// uniqueness race on short_key. It never crosses the service boundary;
	// the shortener recovers it by retrying with a fresh key.
	ErrDuplicateKey = errors.New("short key already exists")

	// ErrCapacityExhausted means the key-generation retry budget ran out.
	ErrCapacityExhausted = errors.New("could not allocate a unique short key")

	// ErrUpstreamUnavailable marks a collaborator timeout or transport
	// failure, so operators can tell our bug from their outage.
	ErrUpstreamUnavailable = errors.New("upstream collaborator unavailable")
)

// ValidationError rejects a malformed or unsafe target URL with a
// human-readable reason.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid URL: %s", e.Reason)
}

func NewValidation(reason string) *ValidationError {
	return &ValidationError{Reason: reason}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
