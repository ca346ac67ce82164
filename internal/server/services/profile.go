package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/guialocal/internal/common"
	"github.com/dmitrijs2005/guialocal/internal/dbx"
	"github.com/dmitrijs2005/guialocal/internal/logging"
	"github.com/dmitrijs2005/guialocal/internal/roles"
	"github.com/dmitrijs2005/guialocal/internal/secevents"
	"github.com/dmitrijs2005/guialocal/internal/server/auth"
	"github.com/dmitrijs2005/guialocal/internal/server/models"
	"github.com/dmitrijs2005/guialocal/internal/server/repositories/repomanager"
)

// ProfileService owns profile records. Every privileged mutation is
// re-validated here with the role gate, whatever the client checked.
type ProfileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	events      EventEmitter
	log         logging.Logger
}

func NewProfileService(db *sql.DB, m repomanager.RepositoryManager, events EventEmitter, l logging.Logger) *ProfileService {
	if events == nil {
		events = nopEmitter{}
	}
	return &ProfileService{db: db, repomanager: m, events: events, log: l}
}

// NewUser is the input of CreateUser.
type NewUser struct {
	Email       string
	Password    string
	DisplayName string
	Phone       *string
	AccountType roles.Role
	CityID      *string
}

// Get returns userID's profile. Users read their own; admins read anyone's.
func (s *ProfileService) Get(ctx context.Context, actorID, userID string) (*models.Profile, error) {
	repo := s.repomanager.Profiles(s.db)
	if actorID != userID {
		actor, err := s.actor(ctx, repo, actorID)
		if err != nil {
			return nil, err
		}
		if err := roles.AuthorizeAdmin(actor.AccountType); err != nil {
			return nil, err
		}
	}
	return repo.Get(ctx, userID)
}

// CreateOwn stores the caller's first profile. Only non-admin account types
// may be self-assigned.
func (s *ProfileService) CreateOwn(ctx context.Context, actorID string, p *models.Profile) (*models.Profile, error) {
	if err := roles.AuthorizeSelf(actorID, p.UserID); err != nil {
		return nil, err
	}
	if p.AccountType == "" {
		p.AccountType = roles.Usuario
	}
	if err := roles.AuthorizeSelfAssign(p.AccountType); err != nil {
		return nil, err
	}
	if strings.TrimSpace(p.DisplayName) == "" {
		return nil, common.ErrorValidation
	}
	if p.Email == "" {
		identity, err := s.repomanager.Identities(s.db).GetByID(ctx, actorID)
		if err != nil {
			return nil, fmt.Errorf("error loading identity: %w", err)
		}
		p.Email = identity.Email
	}

	created, err := s.repomanager.Profiles(s.db).Create(ctx, p)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		s.log.Error(ctx, "create profile", "user_id", actorID, "error", err)
		return nil, common.ErrorInternal
	}
	return created, nil
}

// UpdateOwn changes the caller's display name, phone and city.
func (s *ProfileService) UpdateOwn(ctx context.Context, actorID, displayName string, phone, cityID *string) (*models.Profile, error) {
	if strings.TrimSpace(displayName) == "" {
		return nil, common.ErrorValidation
	}
	return s.repomanager.Profiles(s.db).UpdateOwn(ctx, actorID, displayName, phone, cityID)
}

// SetAccountType changes targetID's account type. The actor must be allowed
// to assign both the current and the requested type, and a city admin only
// reaches accounts of its own city.
func (s *ProfileService) SetAccountType(ctx context.Context, actorID, targetID string, role roles.Role) (*models.Profile, error) {
	if !role.Valid() {
		return nil, common.ErrorValidation
	}
	repo := s.repomanager.Profiles(s.db)

	actor, err := s.actor(ctx, repo, actorID)
	if err != nil {
		return nil, err
	}
	if err := roles.AuthorizeRoleChange(actor.AccountType, role); err != nil {
		return nil, err
	}

	target, err := repo.Get(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if err := roles.AuthorizeRoleChange(actor.AccountType, target.AccountType); err != nil {
		return nil, err
	}
	if err := roles.AuthorizeCity(actor.AccountType, actor.CityID, target.CityID); err != nil {
		return nil, err
	}

	updated, err := repo.SetAccountType(ctx, targetID, role)
	if err != nil {
		return nil, err
	}

	s.events.Emit(ctx, secevents.RoleChange, actorID, map[string]any{
		"target_user_id": targetID,
		"old_role":       string(target.AccountType),
		"new_role":       string(role),
	})
	return updated, nil
}

// CreateUser lets an admin open an account for someone else. Identity and
// profile are written in one transaction.
func (s *ProfileService) CreateUser(ctx context.Context, actorID string, in NewUser) (*models.Profile, error) {
	if in.AccountType == "" {
		in.AccountType = roles.Usuario
	}
	if !in.AccountType.Valid() || strings.TrimSpace(in.DisplayName) == "" {
		return nil, common.ErrorValidation
	}

	actorRole, err := s.actorRole(ctx, s.repomanager.Profiles(s.db), actorID)
	if err != nil {
		return nil, err
	}
	if err := roles.AuthorizeRoleChangeFor(actorRole, in.AccountType); err != nil {
		return nil, err
	}

	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	created, err := dbx.WithTxResult(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (*models.Profile, error) {
		identity, err := s.repomanager.Identities(tx).Create(ctx, &models.Identity{
			Email:        email,
			PasswordHash: hash,
			Metadata:     map[string]any{"nome": in.DisplayName, "account_type": string(in.AccountType)},
		})
		if err != nil {
			return nil, err
		}
		return s.repomanager.Profiles(tx).Create(ctx, &models.Profile{
			UserID:      identity.ID,
			DisplayName: in.DisplayName,
			Email:       email,
			Phone:       in.Phone,
			AccountType: in.AccountType,
			CityID:      in.CityID,
		})
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		s.log.Error(ctx, "create user", "error", err)
		return nil, common.ErrorInternal
	}

	s.events.Emit(ctx, secevents.UserCreation, actorID, map[string]any{
		"target_user_id":   created.UserID,
		"account_type":     string(created.AccountType),
		"created_by_admin": true,
	})
	return created, nil
}

// Delete removes targetID's sessions, profile and identity. A city admin only
// removes accounts of its own city.
func (s *ProfileService) Delete(ctx context.Context, actorID, targetID string) error {
	repo := s.repomanager.Profiles(s.db)

	actor, err := s.actor(ctx, repo, actorID)
	if err != nil {
		return err
	}
	target, err := repo.Get(ctx, targetID)
	if err != nil {
		return err
	}
	if err := roles.AuthorizeDelete(actor.AccountType, target.AccountType); err != nil {
		return err
	}
	if err := roles.AuthorizeCity(actor.AccountType, actor.CityID, target.CityID); err != nil {
		return err
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Sessions(tx).DeleteForUser(ctx, targetID); err != nil {
			return err
		}
		if err := s.repomanager.Profiles(tx).Delete(ctx, targetID); err != nil {
			return err
		}
		return s.repomanager.Identities(tx).Delete(ctx, targetID)
	})
	if err != nil {
		s.log.Error(ctx, "delete user", "target_user_id", targetID, "error", err)
		return common.ErrorInternal
	}

	s.events.Emit(ctx, secevents.UserDeletion, actorID, map[string]any{
		"target_user_id": targetID,
		"account_type":   string(target.AccountType),
	})
	return nil
}

// List returns profiles for admins. A city admin only sees its own city.
func (s *ProfileService) List(ctx context.Context, actorID string, filter models.ProfileFilter) ([]*models.Profile, error) {
	repo := s.repomanager.Profiles(s.db)

	actor, err := s.actor(ctx, repo, actorID)
	if err != nil {
		return nil, err
	}
	if err := roles.AuthorizeAdmin(actor.AccountType); err != nil {
		return nil, err
	}
	if actor.AccountType == roles.AdminCidade {
		if actor.CityID == nil {
			return nil, nil
		}
		filter.CityID = *actor.CityID
	}
	return repo.List(ctx, filter)
}

type profileGetter interface {
	Get(ctx context.Context, userID string) (*models.Profile, error)
}

// actor loads the caller's profile. A caller without one has no application
// identity and is treated as not authenticated.
func (s *ProfileService) actor(ctx context.Context, repo profileGetter, actorID string) (*models.Profile, error) {
	p, err := repo.Get(ctx, actorID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, roles.RequireActor(nil)
		}
		return nil, err
	}
	return p, nil
}

// actorRole is actor reduced to its role; nil when the caller has no profile.
func (s *ProfileService) actorRole(ctx context.Context, repo profileGetter, actorID string) (*roles.Role, error) {
	p, err := repo.Get(ctx, actorID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, err
	}
	r := p.AccountType
	return &r, nil
}
