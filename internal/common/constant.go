// Package common contains shared constants and sentinel errors used across
// guialocal components.
package common

import "time"

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// APIKeyHeaderName carries the public API key on calls to the functions endpoint.
const APIKeyHeaderName = "apikey"

// LogSecurityEventFunction is the name of the serverless function receiving
// security events.
const LogSecurityEventFunction = "log-security-event"

const (
	// MinPasswordLength is the shortest secret accepted on sign-up.
	MinPasswordLength = 8

	// MaxAuthAttempts is the number of failed sign-in attempts allowed per
	// identifier inside one AuthAttemptWindow.
	MaxAuthAttempts = 5

	// AuthAttemptWindow is the period over which failed attempts are counted.
	AuthAttemptWindow = 15 * time.Minute

	// InactivityTimeout is how long a session may go without user activity.
	InactivityTimeout = 30 * time.Minute

	// SessionCheckInterval is the period of the background session validation.
	SessionCheckInterval = 5 * time.Minute
)
