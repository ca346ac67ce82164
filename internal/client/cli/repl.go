package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool
	touch()
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Status(ctx context.Context) error
	EditProfile(ctx context.Context) error
	Avatar(ctx context.Context, args []string) error
	Roles(ctx context.Context) error
	Users(ctx context.Context, args []string) error
	SetRole(ctx context.Context, args []string) error
	CreateUser(ctx context.Context) error
	DeleteUser(ctx context.Context, args []string) error
}

const (
	helpGuest = "Comandos: register, login, exit"
	helpUser  = "Comandos: whoami, status, profile, avatar <arquivo>, logout, exit"
	helpAdmin = "Administração: roles, users [tipo] [cidade], setrole <id> <tipo>, createuser, deluser <id>"
)

// runREPL starts a simple read-eval-print loop for the guialocal CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Every non-empty line counts as
// user activity. Unknown commands are reported back to the user. The loop
// exits on scanner EOF or when the user types "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("guia> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		a.touch()

		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			switch {
			case !a.isLoggedIn():
				printlnFn(helpGuest)
			case a.isAdmin():
				printlnFn(helpUser)
				printlnFn(helpAdmin)
			default:
				printlnFn(helpUser)
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "status":
			_ = a.Status(ctx)

		case "profile":
			_ = a.EditProfile(ctx)

		case "avatar":
			_ = a.Avatar(ctx, args)

		case "roles":
			_ = a.Roles(ctx)

		case "users":
			_ = a.Users(ctx, args)

		case "setrole":
			_ = a.SetRole(ctx, args)

		case "createuser":
			_ = a.CreateUser(ctx)

		case "deluser":
			_ = a.DeleteUser(ctx, args)

		case "exit", "quit":
			printlnFn("Até logo!")
			return

		default:
			printlnFn("Comando desconhecido:", cmd)
		}
	}
}
