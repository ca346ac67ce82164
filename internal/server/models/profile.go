package models

import (
	"time"

	"github.com/dmitrijs2005/guialocal/internal/roles"
)

// Profile is the application-level record of an identity. UserID is unique.
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

// ProfileFilter narrows ListProfiles. Zero fields are ignored.
type ProfileFilter struct {
	AccountType roles.Role
	CityID      string
	Limit       int
	Offset      int
}
