// Package cli wires configuration into running carebot components for the
// command line entrypoints.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aretw0/carebot/internal/config"
	"github.com/aretw0/carebot/internal/text"
	"github.com/aretw0/carebot/pkg/adapters/file"
	httpAdapter "github.com/aretw0/carebot/pkg/adapters/http"
	"github.com/aretw0/carebot/pkg/adapters/memory"
	"github.com/aretw0/carebot/pkg/adapters/redis"
	"github.com/aretw0/carebot/pkg/catalog"
	"github.com/aretw0/carebot/pkg/observability"
	"github.com/aretw0/carebot/pkg/ports"
	"github.com/aretw0/carebot/pkg/session"
)

// App is a fully wired carebot instance.
type App struct {
	Config  *config.Config
	Logger  *slog.Logger
	Catalog *catalog.Catalog
	Store   ports.ContextStore
	Metrics *observability.Metrics
	Manager *session.Manager

	closers []func() error
}

// NewApp builds the store, locker, metrics and session manager described by cfg.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	app := &App{
		Config:  cfg,
		Logger:  logger,
		Metrics: observability.NewMetrics(),
	}

	cat := catalog.Default()
	if cfg.CatalogPath != "" {
		var err error
		if cat, err = catalog.Load(cfg.CatalogPath); err != nil {
			return nil, err
		}
		logger.Info("Catalog loaded", "path", cfg.CatalogPath)
	}
	app.Catalog = cat

	opts := []session.Option{
		session.WithCatalog(cat),
		session.WithLogger(logger),
		session.WithHooks(observability.Hooks(app.Metrics, logger)),
		session.WithLockTTL(cfg.LockTTL),
	}

	switch cfg.Store {
	case config.StoreMemory:
		app.Store = memory.NewStore()
	case config.StoreFile:
		app.Store = file.NewStore(cfg.DataDir)
	case config.StoreRedis:
		rs, err := redis.NewFromURL(cfg.RedisURL,
			redis.WithPrefix(cfg.ContextPrefix),
			redis.WithTTL(cfg.ContextTTL),
		)
		if err != nil {
			return nil, err
		}
		app.Store = rs
		app.closers = append(app.closers, rs.Close)
		if cfg.DistributedLock {
			opts = append(opts, session.WithLocker(redis.NewLocker(rs.Client(), cfg.ContextPrefix)))
		}
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
	logger.Info("Context store ready", "store", cfg.Store, "distributed_lock", cfg.DistributedLock)

	app.Manager = session.NewManager(app.Store, opts...)
	return app, nil
}

// Ping checks the store when it supports it.
func (a *App) Ping(ctx context.Context) error {
	if p, ok := a.Store.(ports.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// Handler returns the HTTP API for this app.
func (a *App) Handler() http.Handler {
	opts := []httpAdapter.Option{
		httpAdapter.WithLogger(a.Logger),
		httpAdapter.WithMetrics(a.Metrics),
		httpAdapter.WithSanitizer(text.NewSanitizer(a.Config.MaxInputSize)),
		httpAdapter.WithRateLimit(a.Config.RateLimitPerMinute),
	}
	if p, ok := a.Store.(ports.Pinger); ok {
		opts = append(opts, httpAdapter.WithHealthCheck(p))
	}
	return httpAdapter.NewHandler(a.Manager, []byte(a.Config.JWTSecret), opts...)
}

// Close releases backend connections.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}
