package securityevents

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/guialocal/internal/dbx"
	"github.com/dmitrijs2005/guialocal/internal/secevents"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Insert(ctx context.Context, e secevents.Event) error {
	md := []byte("{}")
	if e.Metadata != nil {
		var err error
		if md, err = json.Marshal(e.Metadata); err != nil {
			return fmt.Errorf("encode metadata: %w", err)
		}
	}

	query := `
		INSERT INTO security_events (id, event_type, user_id, metadata, occurred_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, e.ID, string(e.Type), e.ActorID, md, e.OccurredAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
