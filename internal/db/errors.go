package db

import "errors"

// Domain-level database error sentinels.
var (
	// Property errors
	ErrPropertyNotFound = errors.New("property not found")

	// User errors
	ErrUserNotFound = errors.New("user not found")

	// Share errors
	ErrShareNotFound  = errors.New("share not found")
	ErrDuplicateToken = errors.New("share token already exists")
	ErrShareInactive  = errors.New("share is not active")
	ErrNoShareUpdates = errors.New("no updatable share fields provided")
)
