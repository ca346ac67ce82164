package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/guialocal/internal/common"
	"github.com/dmitrijs2005/guialocal/internal/dbx"
	"github.com/dmitrijs2005/guialocal/internal/logging"
	"github.com/dmitrijs2005/guialocal/internal/server/auth"
	"github.com/dmitrijs2005/guialocal/internal/server/config"
	"github.com/dmitrijs2005/guialocal/internal/server/models"
	"github.com/dmitrijs2005/guialocal/internal/server/ratelimit"
	"github.com/dmitrijs2005/guialocal/internal/server/repositories/repomanager"
)

// AuthResult describes an authenticated session. Token fields are empty when
// the result comes from GetSession.
type AuthResult struct {
	Identity     *models.Identity
	SessionID    string
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// AuthService handles sign-up, sign-in, token refresh and sign-out.
// Sessions are stored server-side; the refresh token is kept only as a
// SHA-256 digest and rotated on every refresh.
type AuthService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	limiter                      ratelimit.Limiter
	log                          logging.Logger
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration

	dummyOnce sync.Once
	dummyHash []byte
}

func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, limiter ratelimit.Limiter, cfg *config.Config, l logging.Logger) *AuthService {
	return &AuthService{
		db:                           db,
		repomanager:                  m,
		limiter:                      limiter,
		log:                          l,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// SignUp creates an identity. metadata is stored as given and later feeds
// profile creation on the client.
func (s *AuthService) SignUp(ctx context.Context, email, password string, metadata map[string]any) (*models.Identity, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	identity, err := s.repomanager.Identities(s.db).Create(ctx, &models.Identity{
		Email:        email,
		PasswordHash: hash,
		Metadata:     metadata,
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		s.log.Error(ctx, "create identity", "error", err)
		return nil, common.ErrorInternal
	}

	s.log.Info(ctx, "identity created", "user_id", identity.ID)
	return identity, nil
}

// SignIn verifies credentials and opens a session. Failed attempts are
// counted per email; once the limit is reached the account is refused with
// common.ErrRateLimited until the window passes.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*AuthResult, error) {
	key, err := normalizeEmail(email)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	allowed, err := s.limiter.Allow(ctx, key)
	if err != nil {
		s.log.Warn(ctx, "attempt counter unavailable", "error", err)
		allowed = true
	}
	if !allowed {
		return nil, common.ErrRateLimited
	}

	identity, err := s.repomanager.Identities(s.db).GetByEmail(ctx, key)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			s.log.Error(ctx, "lookup identity", "error", err)
			return nil, common.ErrorInternal
		}
		// compare anyway so unknown emails cost the same as wrong passwords
		_ = auth.CheckPassword(s.getDummyHash(), password)
		s.recordFailure(ctx, key)
		return nil, common.ErrorUnauthorized
	}

	if err := auth.CheckPassword(identity.PasswordHash, password); err != nil {
		s.recordFailure(ctx, key)
		return nil, common.ErrorUnauthorized
	}

	if err := s.limiter.Reset(ctx, key); err != nil {
		s.log.Warn(ctx, "reset attempt counter", "error", err)
	}

	return dbx.WithTxResult(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (*AuthResult, error) {
		return s.openSession(ctx, tx, identity)
	})
}

// RefreshToken validates a refresh token and rotates it within a
// transaction. Expired tokens yield common.ErrRefreshTokenExpired, revoked
// sessions common.ErrSessionRevoked.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*AuthResult, error) {
	session, err := s.repomanager.Sessions(s.db).FindByTokenHash(ctx, common.HashToken(refreshToken))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, fmt.Errorf("error searching session: %w", err)
	}
	if session.RevokedAt != nil {
		return nil, common.ErrSessionRevoked
	}
	if !session.ExpiresAt.After(time.Now()) {
		return nil, common.ErrRefreshTokenExpired
	}

	return dbx.WithTxResult(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (*AuthResult, error) {
		refresh, err := common.MakeRandHexString(32)
		if err != nil {
			return nil, common.ErrorInternal
		}
		if err := s.repomanager.Sessions(tx).Rotate(ctx, session.ID, common.HashToken(refresh), s.refreshTokenValidityDuration); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return nil, common.ErrSessionRevoked
			}
			return nil, fmt.Errorf("error rotating refresh token: %w", err)
		}

		identity, err := s.repomanager.Identities(tx).GetByID(ctx, session.UserID)
		if err != nil {
			return nil, fmt.Errorf("error loading identity: %w", err)
		}

		access, expires, err := auth.GenerateToken(identity.ID, session.ID, s.jwtSecret, s.accessTokenValidityDuration)
		if err != nil {
			return nil, common.ErrorInternal
		}
		return &AuthResult{
			Identity:     identity,
			SessionID:    session.ID,
			AccessToken:  access,
			RefreshToken: refresh,
			ExpiresAt:    expires,
		}, nil
	})
}

// SignOut revokes the session. Signing out twice is not an error.
func (s *AuthService) SignOut(ctx context.Context, sessionID string) error {
	if err := s.repomanager.Sessions(s.db).Revoke(ctx, sessionID); err != nil {
		s.log.Error(ctx, "revoke session", "session_id", sessionID, "error", err)
		return common.ErrorInternal
	}
	return nil
}

// GetSession resolves verified access-token claims into the current session.
func (s *AuthService) GetSession(ctx context.Context, claims *auth.Claims) (*AuthResult, error) {
	session, err := s.repomanager.Sessions(s.db).Get(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrSessionRevoked
		}
		return nil, fmt.Errorf("error loading session: %w", err)
	}
	if !session.Active(time.Now()) || session.UserID != claims.UserID {
		return nil, common.ErrSessionRevoked
	}

	identity, err := s.repomanager.Identities(s.db).GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("error loading identity: %w", err)
	}

	res := &AuthResult{Identity: identity, SessionID: session.ID}
	if claims.ExpiresAt != nil {
		res.ExpiresAt = claims.ExpiresAt.Time
	}
	return res, nil
}

func (s *AuthService) openSession(ctx context.Context, tx dbx.DBTX, identity *models.Identity) (*AuthResult, error) {
	refresh, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, common.ErrorInternal
	}

	session, err := s.repomanager.Sessions(tx).Create(ctx, identity.ID, common.HashToken(refresh), s.refreshTokenValidityDuration)
	if err != nil {
		s.log.Error(ctx, "create session", "user_id", identity.ID, "error", err)
		return nil, common.ErrorInternal
	}

	access, expires, err := auth.GenerateToken(identity.ID, session.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &AuthResult{
		Identity:     identity,
		SessionID:    session.ID,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    expires,
	}, nil
}

func (s *AuthService) recordFailure(ctx context.Context, key string) {
	n, err := s.limiter.Hit(ctx, key)
	if err != nil {
		s.log.Warn(ctx, "record failed attempt", "error", err)
		return
	}
	s.log.Info(ctx, "sign-in rejected", "attempts", n)
}

func (s *AuthService) getDummyHash() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = auth.HashPassword("guialocal-placeholder-secret")
	})
	return s.dummyHash
}
