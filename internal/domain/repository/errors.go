package repository

import "errors"

var (
	// ErrNotFound is returned by lookups that match no record.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned when a user email collides with an existing account.
	ErrDuplicateEmail = errors.New("email already registered")
)
