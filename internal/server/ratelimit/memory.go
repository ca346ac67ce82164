package ratelimit

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/guialocal/internal/timex"
)

type attempts struct {
	count int64
	last  time.Time
}

// MemoryLimiter keeps counters in process memory. Suitable for a single
// server instance.
type MemoryLimiter struct {
	mu     sync.Mutex
	limit  int64
	window time.Duration
	clock  timex.Clock
	keys   map[string]*attempts
}

func NewMemoryLimiter(limit int64, window time.Duration, clock timex.Clock) *MemoryLimiter {
	if clock == nil {
		clock = timex.SystemClock{}
	}
	return &MemoryLimiter{limit: limit, window: window, clock: clock, keys: map[string]*attempts{}}
}

// current returns the live entry for key, dropping it when the window has elapsed.
func (l *MemoryLimiter) current(key string) *attempts {
	a, ok := l.keys[key]
	if !ok {
		return nil
	}
	if l.clock.Now().Sub(a.last) >= l.window {
		delete(l.keys, key)
		return nil
	}
	return a
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	a := l.current(normalize(key))
	return a == nil || a.count < l.limit, nil
}

func (l *MemoryLimiter) Hit(_ context.Context, key string) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	key = normalize(key)
	a := l.current(key)
	if a == nil {
		a = &attempts{}
		l.keys[key] = a
	}
	a.count++
	a.last = l.clock.Now()
	return a.count, nil
}

func (l *MemoryLimiter) Reset(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.keys, normalize(key))
	return nil
}

func normalize(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
