package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSession_Expired(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	s := &Session{ExpiresAt: now.Add(time.Minute)}
	assert.False(t, s.Expired(now))

	s.ExpiresAt = now
	assert.True(t, s.Expired(now))

	s.ExpiresAt = now.Add(-time.Second)
	assert.True(t, s.Expired(now))
}
