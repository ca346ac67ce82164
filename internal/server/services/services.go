// Package services contains server-side business logic: authentication and
// sessions, profile records with their privileged mutations, the security
// event log and avatar uploads.
package services

import (
	"context"
	"net/mail"
	"strings"

	"github.com/dmitrijs2005/guialocal/internal/common"
	"github.com/dmitrijs2005/guialocal/internal/secevents"
)

// EventEmitter records security events on a best-effort basis.
// *secevents.Emitter satisfies it.
type EventEmitter interface {
	Emit(ctx context.Context, t secevents.Type, actorID string, metadata map[string]any)
}

type nopEmitter struct{}

func (nopEmitter) Emit(context.Context, secevents.Type, string, map[string]any) {}

// normalizeEmail lower-cases and validates an address.
func normalizeEmail(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return "", common.ErrorValidation
	}
	return s, nil
}
