// Package secevents carries security-relevant facts (logins, sign-ups,
// account changes) to an audit collaborator on a best-effort basis.
package secevents

import (
	"time"

	"github.com/google/uuid"
)

// Type names a security event. The set is open; new values need no code
// changes on the receiving side.
type Type string

const (
	LoginSuccess  Type = "login_success"
	LoginFailed   Type = "login_failed"
	Logout        Type = "logout"
	SignupSuccess Type = "signup_success"
	UserCreation  Type = "user_creation"
	RoleChange    Type = "role_change"
	UserDeletion  Type = "user_deletion"
)

// Event is an immutable audit fact.
type Event struct {
	ID         string         `json:"id"`
	Type       Type           `json:"event_type"`
	ActorID    *string        `json:"user_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	OccurredAt time.Time      `json:"timestamp"`
}

// New stamps an event with a fresh id and the given time.
func New(t Type, actorID string, metadata map[string]any, at time.Time) Event {
	e := Event{
		ID:         uuid.NewString(),
		Type:       t,
		Metadata:   metadata,
		OccurredAt: at.UTC(),
	}
	if actorID != "" {
		id := actorID
		e.ActorID = &id
	}
	return e
}

// Actor returns the actor id or "" for anonymous events.
func (e Event) Actor() string {
	if e.ActorID == nil {
		return ""
	}
	return *e.ActorID
}
