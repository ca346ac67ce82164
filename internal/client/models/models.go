// Package models defines the client-side view of identities, sessions and
// profiles as returned by the backend.
package models

import (
	"time"

	"github.com/dmitrijs2005/guialocal/internal/roles"
)

// User is an authenticated identity. Metadata holds whatever was supplied
// at sign-up (e.g. "nome", "full_name").
type User struct {
	ID        string
	Email     string
	Metadata  map[string]any
	CreatedAt time.Time
}

// Session is the token pair of a signed-in user. ExpiresAt is the access
// token expiry.
type Session struct {
	ID           string
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	User         User
}

// Expired reports whether the session is past ExpiresAt at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// AuthResult is what a successful sign-in returns.
type AuthResult struct {
	User    User
	Session Session
}

// Profile is the application-level record of a user.
type Profile struct {
	UserID      string
	DisplayName string
	Email       string
	Phone       *string
	AccountType roles.Role
	CityID      *string
	AvatarKey   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewUser is an account created by an administrator.
type NewUser struct {
	Email       string
	Password    string
	DisplayName string
	Phone       *string
	AccountType roles.Role
	CityID      *string
}

// ProfileFilter narrows ListProfiles. Zero values match everything.
type ProfileFilter struct {
	AccountType roles.Role
	CityID      string
	Limit       int
	Offset      int
}
