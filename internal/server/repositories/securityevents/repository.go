// Package securityevents persists the audit trail of security events.
package securityevents

import (
	"context"

	"github.com/dmitrijs2005/guialocal/internal/secevents"
)

type Repository interface {
	// Insert stores e. Re-delivery of an already stored event id is ignored.
	Insert(ctx context.Context, e secevents.Event) error
}
