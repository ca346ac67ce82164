// Package logging is the structured logger shared by the guialocal server and
// CLI. Only the interface is visible to components; SlogLogger backs it.
package logging

import "context"

// Logger takes a message plus alternating key/value args:
//
//	log.Warn(ctx, "profile unavailable", "user_id", id, "error", err)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger whose records always carry args, e.g.
	// With("module", "session").
	With(args ...any) Logger
}
