// Package profiles declares the repository contract for application
// profiles. A profile is keyed by the identity id it belongs to.
package profiles

import (
	"context"

	"github.com/dmitrijs2005/guialocal/internal/roles"
	"github.com/dmitrijs2005/guialocal/internal/server/models"
)

type Repository interface {
	// Get returns common.ErrorNotFound when the user has no profile yet.
	Get(ctx context.Context, userID string) (*models.Profile, error)

	// Create inserts p. A second profile for the same user yields
	// common.ErrorAlreadyExists.
	Create(ctx context.Context, p *models.Profile) (*models.Profile, error)

	UpdateOwn(ctx context.Context, userID, displayName string, phone, cityID *string) (*models.Profile, error)
	SetAccountType(ctx context.Context, userID string, role roles.Role) (*models.Profile, error)
	SetAvatarKey(ctx context.Context, userID, key string) error
	Delete(ctx context.Context, userID string) error
	List(ctx context.Context, filter models.ProfileFilter) ([]*models.Profile, error)
}
