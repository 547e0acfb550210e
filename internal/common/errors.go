// Package common defines shared sentinel errors and small helpers used
// across the Travel Guru auth service. Callers should use errors.Is (or
// errors.As for ValidationError) to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Login failures are deliberately indistinguishable: unknown username
	// and wrong password both map here.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// Registration uniqueness violations.
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrDuplicateUsername = errors.New("username already taken")

	// Token lifecycle errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token has expired")

	// Request shape errors.
	ErrMissingFields       = errors.New("missing required fields")
	ErrMissingConfirmation = errors.New("please confirm deletion")

	// Downstream collaborator exceeded its deadline.
	ErrMailTimeout = errors.New("mail delivery timed out")
)
