package models

import "time"

// Session is one active refresh session. The store keeps at most one row per
// username: a new login replaces whatever was there.
type Session struct {
	ID           string
	UserName     string
	RefreshToken string
	ExpiresAt    time.Time
	CreatedAt    time.Time
}
