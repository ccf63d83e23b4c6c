// Package common defines sentinel errors and small helpers shared across
// TaskBuddy layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Directory errors. The messages are user-facing: the CLI prints them
	// verbatim after a failed signup or login.
	ErrDuplicateEmail     = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Task store validation errors.
	ErrEmptyTitle = errors.New("title must not be empty")
)
