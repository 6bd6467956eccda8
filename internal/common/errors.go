// Package common defines shared constants and sentinel errors used across
// client and server layers of triplog. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Auth manager failure taxonomy. These are returned as values, never
	// panicked: the presentation layer turns them into user-facing messages.
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotAuthenticated is returned by operations that need a current
	// session when none is set.
	ErrNotAuthenticated = errors.New("not authenticated")
)
