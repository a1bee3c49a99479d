package dao

import "errors"

// Errors returned by every Store implementation.
var (
	// ErrConstraintViolation is returned when a write would give two users
	// the same username or two records the same ID.
	ErrConstraintViolation = errors.New("record conflicts with an existing one")

	// ErrNotFound is returned when no user or give has the requested key.
	ErrNotFound = errors.New("no such record")
)
