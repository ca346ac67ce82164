// Package server wires storage, rate limiting, the security event pipeline
// and the two public endpoints (gRPC and HTTP functions) into one process.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/guialocal/internal/common"
	"github.com/dmitrijs2005/guialocal/internal/logging"
	"github.com/dmitrijs2005/guialocal/internal/secevents"
	"github.com/dmitrijs2005/guialocal/internal/server/config"
	"github.com/dmitrijs2005/guialocal/internal/server/eventsink"
	"github.com/dmitrijs2005/guialocal/internal/server/ratelimit"
	"github.com/dmitrijs2005/guialocal/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/guialocal/internal/server/services"
	"github.com/dmitrijs2005/guialocal/internal/timex"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/guialocal/internal/server/grpc"
	hs "github.com/dmitrijs2005/guialocal/internal/server/http"
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	db        *sql.DB
	publisher eventsink.Publisher
	emitter   *secevents.Emitter

	grpcServer *gs.GRPCServer
	httpServer *hs.Server
}

// openDB is a seam for tests.
var openDB = func(dsn string) (*sql.DB, error) {
	return sql.Open("pgx", dsn)
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSON(os.Stdout, c.LogLevel)

	db, err := openDB(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	limiter, err := newLimiter(c)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("rate limiter init error: %w", err)
	}

	publisher := newPublisher(c)

	events := services.NewEventService(db, m, publisher, logger)
	emitter := secevents.NewEmitter(events, logger)

	as := services.NewAuthService(db, m, limiter, c, logger)
	ps := services.NewProfileService(db, m, emitter, logger)
	av := services.NewAvatarService(db, m, c)

	return &App{
		config:     c,
		logger:     logger,
		db:         db,
		publisher:  publisher,
		emitter:    emitter,
		grpcServer: gs.NewGRPCServer(c.EndpointAddrGRPC, logger, as, ps, av, c.SecretKey),
		httpServer: hs.NewServer(c.EndpointAddrHTTP, c.FunctionsAPIKey, events, logger),
	}, nil
}

func newLimiter(c *config.Config) (ratelimit.Limiter, error) {
	if c.RedisURL == "" {
		return ratelimit.NewMemoryLimiter(common.MaxAuthAttempts, common.AuthAttemptWindow, timex.SystemClock{}), nil
	}
	client, err := ratelimit.NewRedisClient(c.RedisURL)
	if err != nil {
		return nil, err
	}
	return ratelimit.NewRedisLimiter(client, common.MaxAuthAttempts, common.AuthAttemptWindow), nil
}

func newPublisher(c *config.Config) eventsink.Publisher {
	if len(c.KafkaBrokers) == 0 {
		return eventsink.NopPublisher{}
	}
	return eventsink.NewKafkaPublisher(c.KafkaBrokers, c.KafkaTopic)
}

// Run serves both endpoints until SIGINT/SIGTERM or until one of them fails,
// then releases resources.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "Starting app...")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return app.grpcServer.Run(gctx) })
	g.Go(func() error { return app.httpServer.Run(gctx) })

	err := g.Wait()
	app.close(ctx)
	return err
}

func (app *App) close(ctx context.Context) {
	app.emitter.Close()
	if err := app.publisher.Close(); err != nil {
		app.logger.Warn(ctx, "publisher close error", "error", err)
	}
	if err := app.db.Close(); err != nil {
		app.logger.Warn(ctx, "db close error", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
