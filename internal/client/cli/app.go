package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/dmitrijs2005/guialocal/internal/client/client"
	"github.com/dmitrijs2005/guialocal/internal/client/config"
	"github.com/dmitrijs2005/guialocal/internal/client/profile"
	"github.com/dmitrijs2005/guialocal/internal/client/session"
	"github.com/dmitrijs2005/guialocal/internal/logging"
	"github.com/dmitrijs2005/guialocal/internal/secevents"
)

type App struct {
	config  *config.Config
	backend client.AdminBackend
	manager *session.Manager
	logger  logging.Logger
	reader  *bufio.Reader
	out     io.Writer
	closers []func()

	mu   sync.Mutex
	path session.Route
}

// NewApp connects to the backend and assembles the session context around it.
func NewApp(c *config.Config) (*App, error) {
	logger := logging.NewText(os.Stderr, c.LogLevel)

	gc, err := client.NewGRPCClient(c.ServerEndpointAddr, c.FunctionsBaseURL, c.APIKey)
	if err != nil {
		return nil, err
	}

	emitter := secevents.NewEmitter(client.NewFunctionNotifier(gc), logger)
	resolver := profile.NewResolver(gc, emitter, logger)

	a := newApp(c, gc, resolver, emitter, os.Stdin, os.Stdout, logger)
	a.closers = append(a.closers, emitter.Close, func() {
		if err := gc.Close(); err != nil {
			logger.Warn(context.Background(), "closing connection", "error", err)
		}
	})
	return a, nil
}

func newApp(c *config.Config, b client.AdminBackend, p session.ProfileResolver, e session.Emitter,
	in io.Reader, out io.Writer, l logging.Logger, opts ...session.Option) *App {

	a := &App{
		config:  c,
		backend: b,
		logger:  l.With("module", "cli"),
		reader:  bufio.NewReader(in),
		out:     out,
		path:    session.RootPath,
	}

	opts = append([]session.Option{
		session.WithNavigator(session.NavigatorFunc(a.navigate)),
		session.WithNotices(session.NoticeFunc(a.notice)),
		session.WithCurrentPath(a.currentPath),
		session.WithCheckInterval(c.SessionCheckInterval),
	}, opts...)
	a.manager = session.NewManager(b, p, e, l, opts...)
	return a
}

// Run restores a stored session and serves the REPL until the user leaves.
func (a *App) Run(ctx context.Context) error {
	defer a.close()

	if err := a.manager.Init(ctx); err != nil {
		return err
	}
	defer a.manager.Teardown()

	printlnFn("Guia Local CLI (digite 'help' para ver os comandos)")
	if u := a.manager.CurrentUser(); u != nil {
		printlnFn("Sessão restaurada para", u.Email)
	}

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
	return nil
}

func (a *App) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func (a *App) isLoggedIn() bool {
	return a.manager.CurrentUser() != nil
}

func (a *App) isAdmin() bool {
	r := a.manager.CurrentRole()
	return r != nil && r.IsAdmin()
}

// touch counts a typed command as user activity.
func (a *App) touch() {
	a.manager.UpdateActivity()
}

func (a *App) navigate(r session.Route) {
	a.mu.Lock()
	a.path = r
	a.mu.Unlock()
	fmt.Fprintln(a.out, "->", r)
}

func (a *App) notice(msg string) {
	fmt.Fprintln(a.out, "!", msg)
}

func (a *App) currentPath() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return string(a.path)
}

func (a *App) setPath(r session.Route) {
	a.mu.Lock()
	a.path = r
	a.mu.Unlock()
}

func (a *App) getStatus() string {
	u := a.manager.CurrentUser()
	if u == nil {
		return ""
	}
	parts := []string{u.Email}
	if r := a.manager.CurrentRole(); r != nil {
		parts = append(parts, r.String())
	}
	parts = append(parts, a.currentPath())
	return fmt.Sprintf("(%s)", strings.Join(parts, " "))
}

// fail reports err to the user and returns it unchanged.
func (a *App) fail(ctx context.Context, op string, err error) error {
	a.logger.Debug(ctx, "command failed", "command", op, "error", err)
	fmt.Fprintln(a.out, userMessage(err))
	return err
}
