// Package client talks to the guialocal backend.
//
// Backend is the contract the session manager and profile resolver depend
// on. GRPCClient implements it over the DirectoryService gRPC API: it keeps
// the current token pair, injects the access token into every call,
// refreshes it once when the server answers "token expired", and pushes
// auth state transitions (INITIAL_SESSION, SIGNED_IN, TOKEN_REFRESHED,
// SIGNED_OUT) to subscribers. Function calls such as log-security-event go
// over plain HTTP with the public API key.
//
// gRPC statuses are mapped back to the sentinels in internal/common, and
// permission denials to *roles.PermissionError, so callers match them with
// errors.Is / errors.As.
package client
