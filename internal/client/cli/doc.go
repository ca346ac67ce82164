// Package cli provides the interactive guialocal command-line client.
//
// It wires configuration, the backend client, the session manager and an
// interactive REPL. Typical flow: restore a stored session, then execute user
// commands until the user exits.
//
// Key features:
//   - Register / Login / Logout with local throttling of failed attempts
//   - Whoami / Status for the signed-in account
//   - Profile editing and avatar upload
//   - Administration: list, create and delete accounts, change account types
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
