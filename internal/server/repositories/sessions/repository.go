// Package sessions declares the repository contract for server-side sign-in
// sessions. Each session owns the digest of its current refresh token.
package sessions

import (
	"context"
	"time"

	"github.com/dmitrijs2005/guialocal/internal/server/models"
)

type Repository interface {
	// Create stores a session for userID with expiry now+validity.
	Create(ctx context.Context, userID, tokenHash string, validity time.Duration) (*models.Session, error)

	// FindByTokenHash returns common.ErrorNotFound when no session holds the digest.
	FindByTokenHash(ctx context.Context, tokenHash string) (*models.Session, error)

	Get(ctx context.Context, id string) (*models.Session, error)

	// Rotate swaps the refresh token digest of an active session and extends
	// its expiry. Revoked or unknown sessions yield common.ErrorNotFound.
	Rotate(ctx context.Context, id, newTokenHash string, validity time.Duration) error

	// Revoke marks the session revoked. Revoking twice is not an error.
	Revoke(ctx context.Context, id string) error

	// DeleteForUser removes every session of userID.
	DeleteForUser(ctx context.Context, userID string) error
}
