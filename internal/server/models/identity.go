// Package models defines server-side data models persisted in the database.
package models

import "time"

// Identity is an authentication account. It is distinct from the
// application Profile that is created for it on first sign-in.
type Identity struct {
	ID           string
	Email        string
	PasswordHash []byte
	// Metadata holds sign-up attributes (display name, requested account
	// type, phone...) as sent by the client.
	Metadata  map[string]any
	CreatedAt time.Time
}
