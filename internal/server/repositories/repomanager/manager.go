package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/guialocal/internal/dbx"
	"github.com/dmitrijs2005/guialocal/internal/server/repositories/identities"
	"github.com/dmitrijs2005/guialocal/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/guialocal/internal/server/repositories/securityevents"
	"github.com/dmitrijs2005/guialocal/internal/server/repositories/sessions"
)

// RepositoryManager vends repositories bound to a DBTX so services can run
// the same code inside or outside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Identities(db dbx.DBTX) identities.Repository
	Profiles(db dbx.DBTX) profiles.Repository
	Sessions(db dbx.DBTX) sessions.Repository
	SecurityEvents(db dbx.DBTX) securityevents.Repository
}
