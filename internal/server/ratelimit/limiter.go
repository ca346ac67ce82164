// Package ratelimit counts failed authentication attempts per identifier.
// An identifier is blocked once it reaches the limit and unblocked when the
// window has passed since its last recorded failure.
package ratelimit

import "context"

// Limiter tracks failed attempts for a key.
type Limiter interface {
	// Allow reports whether another attempt is permitted for key.
	Allow(ctx context.Context, key string) (bool, error)
	// Hit records one failed attempt and returns the current count.
	Hit(ctx context.Context, key string) (int64, error)
	// Reset forgets every recorded attempt for key.
	Reset(ctx context.Context, key string) error
}
