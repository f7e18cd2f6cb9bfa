// Package common defines shared constants and sentinel errors used across
// the server and the CLI client. Callers should use errors.Is to match these
// values; producers wrap them with fmt.Errorf("...: %w", ...) to add context.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Input errors, including references to rows that do not exist.
	ErrValidation = errors.New("validation error")

	// Auth errors.
	ErrInvalidCredentials = errors.New("invalid username/password")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInvalidToken       = errors.New("invalid token")
	ErrForbidden          = errors.New("forbidden")

	ErrInternal = errors.New("internal error")
)
