// Package identities declares the repository contract for authentication
// accounts (email + password hash).
package identities

import (
	"context"

	"github.com/dmitrijs2005/guialocal/internal/server/models"
)

// Repository stores identities. Lookups by email are case-insensitive.
type Repository interface {
	// Create inserts the identity and fills ID and CreatedAt. A duplicate
	// email yields common.ErrorAlreadyExists.
	Create(ctx context.Context, identity *models.Identity) (*models.Identity, error)

	// GetByEmail returns common.ErrorNotFound when no identity matches.
	GetByEmail(ctx context.Context, email string) (*models.Identity, error)

	GetByID(ctx context.Context, id string) (*models.Identity, error)

	// Delete removes the identity. Deleting a missing row yields common.ErrorNotFound.
	Delete(ctx context.Context, id string) error
}
