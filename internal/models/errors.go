package models

import "errors"

// Sentinel errors for common failure conditions
var (
	ErrNotFound    = errors.New("resource not found")
	ErrConflict    = errors.New("resource already exists")
	ErrBadRequest  = errors.New("bad request")
	ErrUnavailable = errors.New("storage unavailable")

	// Authentication outcomes. Unknown-username and wrong-password are
	// deliberately indistinguishable to callers; only locked is surfaced
	// as its own condition.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountLocked      = errors.New("account is locked")
	ErrInsufficientStock  = errors.New("insufficient stock")
)
