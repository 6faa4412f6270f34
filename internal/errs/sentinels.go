// Package errs contains sentinel errors shared across layers so handlers
// can map store failures to HTTP statuses.
package errs

import "errors"

var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrEmailTaken indicates a registration attempt with an email that
	// already has an account.
	ErrEmailTaken = errors.New("email already registered")

	// ErrUnauthorized indicates failed authentication.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates an ownership mismatch on a mutating operation.
	ErrForbidden = errors.New("forbidden")
)
