// Package common defines shared constants and sentinel errors used across
// client and server layers of guialocal. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors.
	ErrorValidation     = errors.New("validation error")
	ErrPasswordTooShort = errors.New("password too short")
	ErrRateLimited      = errors.New("too many authentication attempts")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrSessionRevoked      = errors.New("session revoked")
)

// User-facing messages. Internal diagnostics are logged separately.
const (
	MsgRateLimited       = "Muitas tentativas de login. Tente novamente em 15 minutos."
	MsgPasswordTooShort  = "A senha deve ter pelo menos 8 caracteres."
	MsgInvalidCredential = "E-mail ou senha inválidos."
	MsgSessionInactive   = "Sessão expirada por inatividade. Faça login novamente."
	MsgSessionExpired    = "Sua sessão expirou. Faça login novamente."
	MsgUnexpected        = "Ocorreu um erro inesperado. Tente novamente."
)
