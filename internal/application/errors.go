package application

import "errors"

var (
	ErrUnauthenticated      = errors.New("unauthenticated")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrDuplicateAccount     = errors.New("an account with this email already exists")
	ErrUserNotFound         = errors.New("user not found")
	ErrStorageNotConfigured = errors.New("audio storage not configured")
	ErrInvalidPassword      = errors.New("password must be 8 to 72 bytes")
)
