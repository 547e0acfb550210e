// Package models holds the persistent record types shared by repositories
// and services.
package models

import "time"

// Roles assignable to a user. Registration never accepts RoleAdmin.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is one account row. UserName is the primary identifier and, like
// Email, globally unique. PasswordHash is a bcrypt hash and never leaves the
// service.
type User struct {
	UserName     string
	Email        string
	FirstName    string
	LastName     string
	Phone        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserUpdate is the whitelist of fields a profile update may touch. A nil
// field is left unchanged. The primary identifier is deliberately absent.
type UserUpdate struct {
	Email     *string
	FirstName *string
	LastName  *string
	Phone     *string
}

// Empty reports whether the update would change nothing.
func (u *UserUpdate) Empty() bool {
	return u.Email == nil && u.FirstName == nil && u.LastName == nil && u.Phone == nil
}
