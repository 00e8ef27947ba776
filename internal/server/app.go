// Package server assembles the ledger backend: storage, services and the
// HTTP and gRPC transports, and runs them until a shutdown signal arrives.
package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/ledgerkeeper/internal/logging"
	"github.com/dmitrijs2005/ledgerkeeper/internal/server/auth"
	"github.com/dmitrijs2005/ledgerkeeper/internal/server/config"
	httpx "github.com/dmitrijs2005/ledgerkeeper/internal/server/http"
	"github.com/dmitrijs2005/ledgerkeeper/internal/server/objectstore"
	"github.com/dmitrijs2005/ledgerkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/ledgerkeeper/internal/server/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/ledgerkeeper/internal/server/grpc"
)

type runner interface {
	Run(ctx context.Context) error
}

type App struct {
	config      *config.Config
	logger      logging.Logger
	repomanager repomanager.RepositoryManager
	httpServer  runner
	grpcServer  runner
}

// NewApp opens storage, applies migrations and builds both transports.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {

	m, err := openStorage(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	hasher, err := auth.NewPasswordHasher(c.BcryptCost)
	if err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("password hasher init error: %w", err)
	}
	tokens := auth.NewTokenIssuer([]byte(c.SecretKey), c.AccessTokenValidityDuration)

	// exports are optional; without object storage the endpoint answers 500
	var store objectstore.Store
	s3store, err := objectstore.NewS3Store(ctx, objectstore.Options{
		Region:       c.S3Region,
		AccessKey:    c.S3RootUser,
		SecretKey:    c.S3RootPassword,
		BaseEndpoint: c.S3BaseEndpoint,
		Bucket:       c.S3Bucket,
	})
	if err != nil {
		logger.Warn(ctx, "object storage unavailable, exports disabled", "error", err)
	} else {
		store = s3store
	}

	us := services.NewUserService(m, hasher, tokens, logger)
	ls := services.NewTransactionService(m, logger)
	es := services.NewExportService(m, store, c.ExportURLValidity, logger)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	router := httpx.NewRouter(httpx.Deps{
		Logger:   logger,
		Users:    us,
		Ledger:   ls,
		Exporter: es,
		Tokens:   tokens,
		Health:   m.Ping,
		Registry: reg,
	})

	app := &App{
		config:      c,
		logger:      logger,
		repomanager: m,
		httpServer:  httpx.NewServer(c.EndpointAddrHTTP, router, logger),
	}
	if c.EndpointAddrGRPC != "" {
		app.grpcServer = gs.NewGRPCServer(c.EndpointAddrGRPC, logger, us, ls, es, tokens)
	}
	return app, nil
}

func openStorage(ctx context.Context, c *config.Config) (repomanager.RepositoryManager, error) {
	if c.StorageBackend == config.StorageMemory {
		return repomanager.NewMemoryRepositoryManager(), nil
	}

	m, err := repomanager.OpenPostgres(c.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	if err := m.RunMigrations(ctx); err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}
	return m, nil
}

// Run serves until ctx is cancelled, a termination signal arrives or a
// transport fails. Storage is closed on return.
func (app *App) Run(ctx context.Context) error {

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "Starting app...", "storage", app.config.StorageBackend)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return app.httpServer.Run(ctx)
	})
	if app.grpcServer != nil {
		g.Go(func() error {
			return app.grpcServer.Run(ctx)
		})
	}

	err := g.Wait()
	if cerr := app.repomanager.Close(); cerr != nil {
		err = errors.Join(err, cerr)
	}

	app.logger.Info(context.Background(), "App stopped")
	return err
}

// Main loads configuration and runs the app; it returns the process exit code.
func Main() int {
	cfg := config.LoadConfig()
	logger := logging.NewJSONLogger(os.Stdout, cfg.LogLevel)
	ctx := context.Background()

	if err := cfg.Validate(); err != nil {
		logger.Error(ctx, "invalid configuration", "error", err)
		return 2
	}

	app, err := NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, err.Error())
		return 1
	}

	if err := app.Run(ctx); err != nil {
		logger.Error(ctx, "app failed", "error", err)
		return 1
	}
	return 0
}
