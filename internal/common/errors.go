// Package common defines sentinel errors and constants shared by the client
// and server halves of GophGarage. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// Ownership errors (a referenced vehicle does not belong to the caller).
	ErrorForeignVehicle = errors.New("vehicle does not belong to user")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken            = errors.New("invalid token")
	ErrInvalidAuthHeaderFormat = errors.New("invalid auth header format")
)
