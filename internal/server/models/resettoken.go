package models

import "time"

// ResetToken is one password-reset grant. TokenHash is the SHA-256 digest of
// the emailed secret; the raw secret is never stored. A token is valid while
// Used is false and ExpiresAt lies in the future, and is consumed exactly
// once.
type ResetToken struct {
	ID        string
	UserName  string
	TokenHash string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}
