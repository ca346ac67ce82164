// Package profile maps an authenticated identity to its application profile,
// creating the profile on first sign-in.
package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/guialocal/internal/client/models"
	"github.com/dmitrijs2005/guialocal/internal/common"
	"github.com/dmitrijs2005/guialocal/internal/logging"
	"github.com/dmitrijs2005/guialocal/internal/roles"
	"github.com/dmitrijs2005/guialocal/internal/secevents"
)

// ErrLookupFailed means the profile could not be read for a reason other
// than its absence. No profile is created in that case.
var ErrLookupFailed = errors.New("profile lookup failed")

// DefaultDisplayName is used when the identity offers nothing better.
const DefaultDisplayName = "Usuário"

// Store reads and writes profile records.
type Store interface {
	ReadProfile(ctx context.Context, userID string) (*models.Profile, error)
	WriteProfile(ctx context.Context, p *models.Profile) (*models.Profile, error)
}

// Emitter records security events on a best-effort basis.
type Emitter interface {
	Emit(ctx context.Context, t secevents.Type, actorID string, metadata map[string]any)
}

// Extra carries optional fields chosen at sign-up.
type Extra struct {
	DisplayName string
	Phone       *string
	CityID      *string
}

type Resolver struct {
	store  Store
	events Emitter
	logger logging.Logger
}

func NewResolver(store Store, events Emitter, l logging.Logger) *Resolver {
	return &Resolver{store: store, events: events, logger: l.With("module", "profile")}
}

// FetchProfile returns the profile of identity. When none exists yet it is
// created from the sign-up metadata: "account_type" if self-assignable
// (usuario otherwise), "phone" and "city_id".
func (r *Resolver) FetchProfile(ctx context.Context, identity models.User) (*models.Profile, error) {
	p, err := r.store.ReadProfile(ctx, identity.ID)
	if err == nil {
		return p, nil
	}
	if errors.Is(err, common.ErrorNotFound) {
		return r.CreateUserProfile(ctx, identity, signUpRole(identity), signUpExtra(identity))
	}

	r.logger.Warn(ctx, "profile lookup failed", "user_id", identity.ID, "error", err)
	return nil, fmt.Errorf("%w: %w", ErrLookupFailed, err)
}

// CreateUserProfile persists a new profile for identity. An empty role means
// usuario. When the profile already exists (a concurrent creation won), the
// stored one is returned.
func (r *Resolver) CreateUserProfile(ctx context.Context, identity models.User, role roles.Role, extra *Extra) (*models.Profile, error) {
	if role == "" {
		role = roles.Usuario
	}

	p := &models.Profile{
		UserID:      identity.ID,
		DisplayName: DisplayName(identity, extra),
		Email:       identity.Email,
		AccountType: role,
	}
	if extra != nil {
		p.Phone = extra.Phone
		p.CityID = extra.CityID
	}

	r.events.Emit(ctx, secevents.UserCreation, identity.ID, map[string]any{
		"email":        identity.Email,
		"account_type": role.String(),
	})

	created, err := r.store.WriteProfile(ctx, p)
	if err == nil {
		return created, nil
	}

	if errors.Is(err, common.ErrorAlreadyExists) {
		if existing, rerr := r.store.ReadProfile(ctx, identity.ID); rerr == nil {
			return existing, nil
		}
	}

	r.logger.Error(ctx, "profile creation failed", "user_id", identity.ID, "error", err)
	return nil, fmt.Errorf("create profile: %w", err)
}

// DisplayName picks, in order: the explicit name, metadata "nome" or
// "full_name", metadata "name", the local part of the email, and finally
// DefaultDisplayName.
func DisplayName(identity models.User, extra *Extra) string {
	if extra != nil {
		if n := strings.TrimSpace(extra.DisplayName); n != "" {
			return n
		}
	}
	for _, key := range []string{"nome", "full_name", "name"} {
		if n := metadataString(identity.Metadata, key); n != "" {
			return n
		}
	}
	if local, _, ok := strings.Cut(identity.Email, "@"); ok && strings.TrimSpace(local) != "" {
		return strings.TrimSpace(local)
	}
	return DefaultDisplayName
}

func metadataString(md map[string]any, key string) string {
	v, ok := md[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(v)
}

func signUpRole(identity models.User) roles.Role {
	role, err := roles.Parse(metadataString(identity.Metadata, "account_type"))
	if err != nil || !roles.SelfAssignable(role) {
		return roles.Usuario
	}
	return role
}

func signUpExtra(identity models.User) *Extra {
	extra := &Extra{}
	if v := metadataString(identity.Metadata, "phone"); v != "" {
		extra.Phone = &v
	}
	if v := metadataString(identity.Metadata, "city_id"); v != "" {
		extra.CityID = &v
	}
	return extra
}
