package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/guialocal/internal/common"
	"github.com/dmitrijs2005/guialocal/internal/dbx"
	"github.com/dmitrijs2005/guialocal/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX (satisfied by
// *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db  dbx.DBTX
	now func() time.Time
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db, now: time.Now}
}

func (r *PostgresRepository) Create(ctx context.Context, userID, tokenHash string, validity time.Duration) (*models.Session, error) {
	s := &models.Session{UserID: userID, TokenHash: tokenHash, ExpiresAt: r.now().Add(validity)}

	query := `
		INSERT INTO sessions (user_id, token_hash, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	if err := r.db.QueryRowContext(ctx, query, userID, tokenHash, s.ExpiresAt).Scan(&s.ID, &s.CreatedAt); err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	return s, nil
}

func (r *PostgresRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*models.Session, error) {
	query := `
		SELECT id, user_id, token_hash, expires_at, revoked_at, created_at
		FROM sessions
		WHERE token_hash = $1
	`
	return scanSession(r.db.QueryRowContext(ctx, query, tokenHash))
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Session, error) {
	query := `
		SELECT id, user_id, token_hash, expires_at, revoked_at, created_at
		FROM sessions
		WHERE id = $1
	`
	return scanSession(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) Rotate(ctx context.Context, id, newTokenHash string, validity time.Duration) error {
	query := `
		UPDATE sessions SET token_hash = $2, expires_at = $3
		WHERE id = $1 AND revoked_at IS NULL
	`
	res, err := r.db.ExecContext(ctx, query, id, newTokenHash, r.now().Add(validity))
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) Revoke(ctx context.Context, id string) error {
	query := `
		UPDATE sessions SET revoked_at = $2
		WHERE id = $1 AND revoked_at IS NULL
	`
	if _, err := r.db.ExecContext(ctx, query, id, r.now()); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DeleteForUser(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func scanSession(row *sql.Row) (*models.Session, error) {
	s := &models.Session{}
	if err := row.Scan(&s.ID, &s.UserID, &s.TokenHash, &s.ExpiresAt, &s.RevokedAt, &s.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}
