package errs

import "errors"

// Sentinels shared across the command and query layers.
var (
	// ErrUserNotFound is returned when an operation targets a user outside the directory.
	ErrUserNotFound = errors.New("user not found")
)
