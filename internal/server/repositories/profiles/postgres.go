package profiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/guialocal/internal/common"
	"github.com/dmitrijs2005/guialocal/internal/dbx"
	"github.com/dmitrijs2005/guialocal/internal/roles"
	"github.com/dmitrijs2005/guialocal/internal/server/models"
)

const columns = `user_id, display_name, email, phone, account_type, city_id, avatar_key, created_at, updated_at`

// defaultListLimit caps List when the filter carries no limit.
const defaultListLimit = 100

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProfile(s scanner) (*models.Profile, error) {
	p := &models.Profile{}
	var accountType string
	err := s.Scan(&p.UserID, &p.DisplayName, &p.Email, &p.Phone, &accountType, &p.CityID, &p.AvatarKey, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	p.AccountType = roles.Role(accountType)
	return p, nil
}

func (r *PostgresRepository) Get(ctx context.Context, userID string) (*models.Profile, error) {
	query := `SELECT ` + columns + ` FROM profiles WHERE user_id = $1`
	return scanProfile(r.db.QueryRowContext(ctx, query, userID))
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	query :=
		`INSERT INTO profiles (user_id, display_name, email, phone, account_type, city_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING ` + columns

	row := r.db.QueryRowContext(ctx, query,
		p.UserID, p.DisplayName, p.Email, p.Phone, string(p.AccountType), p.CityID)

	created, err := scanProfile(row)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, err
	}
	return created, nil
}

func (r *PostgresRepository) UpdateOwn(ctx context.Context, userID, displayName string, phone, cityID *string) (*models.Profile, error) {
	query :=
		`UPDATE profiles SET display_name = $2, phone = $3, city_id = $4, updated_at = now()
		 WHERE user_id = $1
		 RETURNING ` + columns
	return scanProfile(r.db.QueryRowContext(ctx, query, userID, displayName, phone, cityID))
}

func (r *PostgresRepository) SetAccountType(ctx context.Context, userID string, role roles.Role) (*models.Profile, error) {
	query :=
		`UPDATE profiles SET account_type = $2, updated_at = now()
		 WHERE user_id = $1
		 RETURNING ` + columns
	return scanProfile(r.db.QueryRowContext(ctx, query, userID, string(role)))
}

func (r *PostgresRepository) SetAvatarKey(ctx context.Context, userID, key string) error {
	return r.execOne(ctx, `UPDATE profiles SET avatar_key = $2, updated_at = now() WHERE user_id = $1`, userID, key)
}

func (r *PostgresRepository) Delete(ctx context.Context, userID string) error {
	return r.execOne(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID)
}

func (r *PostgresRepository) List(ctx context.Context, filter models.ProfileFilter) ([]*models.Profile, error) {
	var (
		where []string
		args  []any
	)
	if filter.AccountType != "" {
		args = append(args, string(filter.AccountType))
		where = append(where, fmt.Sprintf("account_type = $%d", len(args)))
	}
	if filter.CityID != "" {
		args = append(args, filter.CityID)
		where = append(where, fmt.Sprintf("city_id = $%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	var b strings.Builder
	b.WriteString(`SELECT ` + columns + ` FROM profiles`)
	if len(where) > 0 {
		b.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	args = append(args, limit, max(filter.Offset, 0))
	fmt.Fprintf(&b, " ORDER BY created_at, user_id LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []*models.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) execOne(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
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
