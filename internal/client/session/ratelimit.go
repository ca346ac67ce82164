package session

import (
	"strings"
	"time"
)

type attempts struct {
	count int
	last  time.Time
}

func identifierKey(identifier string) string {
	return strings.ToLower(strings.TrimSpace(identifier))
}

// expiredLocked drops the counter of key once the window has passed since
// its last attempt. m.mu must be held.
func (m *Manager) expiredLocked(key string, now time.Time) {
	if a, ok := m.attempts[key]; ok && now.Sub(a.last) >= m.attemptWindow {
		delete(m.attempts, key)
	}
}

// CheckRateLimit reports whether another sign-in attempt is allowed for
// identifier.
func (m *Manager) CheckRateLimit(identifier string) bool {
	key := identifierKey(identifier)
	now := m.clock.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.expiredLocked(key, now)
	a, ok := m.attempts[key]
	return !ok || a.count < m.maxAttempts
}

// RecordAuthAttempt counts a failed attempt for identifier.
func (m *Manager) RecordAuthAttempt(identifier string) {
	key := identifierKey(identifier)
	now := m.clock.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.expiredLocked(key, now)
	a, ok := m.attempts[key]
	if !ok {
		a = &attempts{}
		m.attempts[key] = a
	}
	a.count++
	a.last = now
}

func (m *Manager) ResetAuthAttempts(identifier string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.attempts, identifierKey(identifier))
}
