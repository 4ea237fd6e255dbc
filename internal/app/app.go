package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/TarielTopuria/EcommerceAngular/internal/api"
	"github.com/TarielTopuria/EcommerceAngular/internal/cart"
	"github.com/TarielTopuria/EcommerceAngular/internal/catalog"
	"github.com/TarielTopuria/EcommerceAngular/internal/config"
	"github.com/TarielTopuria/EcommerceAngular/internal/session"
	"github.com/TarielTopuria/EcommerceAngular/internal/storage"
	"github.com/TarielTopuria/EcommerceAngular/internal/storage/memory"
	storageredis "github.com/TarielTopuria/EcommerceAngular/internal/storage/redis"
	"github.com/TarielTopuria/EcommerceAngular/internal/theme"
	"github.com/TarielTopuria/EcommerceAngular/pkg/health"
	"github.com/TarielTopuria/EcommerceAngular/pkg/httpclient"
)

// App wires together all dependencies and runs the storefront.
type App struct {
	cfg    *config.Config
	logger *slog.Logger
	rdb    *redis.Client // nil when the in-memory fallback is active

	Storage storage.Store
	Session *session.Store
	Cart    *cart.Store
	Catalog *catalog.Store
	Theme   *theme.Store

	httpServer *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Select persistent storage. An unreachable Redis degrades to the
	// in-memory store: the storefront keeps working, state just does not
	// survive a restart.
	var (
		rdb   *redis.Client
		store storage.Store
	)
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable, using in-memory storage",
				slog.String("addr", cfg.RedisAddr),
				slog.String("error", err.Error()),
			)
			_ = rdb.Close()
			rdb = nil
			store = memory.NewStore()
		} else {
			logger.Info("connected to Redis",
				slog.String("addr", cfg.RedisAddr),
				slog.Int("db", cfg.RedisDB),
			)
			store = storageredis.NewStore(rdb, logger)
		}
	} else {
		logger.Info("no redis address configured, using in-memory storage")
		store = memory.NewStore()
	}

	// Remote API client behind a circuit breaker. Requests are never
	// retried automatically.
	httpClient := httpclient.New(httpclient.Config{
		Timeout:         time.Duration(cfg.APITimeoutSeconds) * time.Second,
		MaxConnsPerHost: 100,
	})
	breakerClient := httpclient.NewCircuitBreakerClient(
		httpClient,
		httpclient.DefaultCircuitBreakerConfig("catalog-api"),
		logger,
	)
	apiClient := api.NewClient(cfg.APIBaseURL, breakerClient, logger)

	// Build the stores.
	sessionStore := session.NewStore(apiClient, store, cfg.AdminUsernames, logger)
	cartStore := cart.NewStore(store, logger)
	catalogStore := catalog.NewStore(apiClient, store, cfg.PersistLocalMutations, logger)
	themeStore := theme.NewStore(store, nil, logger)

	// Health checks.
	healthHandler := health.NewHandler()
	if rdb != nil {
		healthHandler.Register("redis", func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      NewRouter(healthHandler, logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:        cfg,
		logger:     logger,
		rdb:        rdb,
		Storage:    store,
		Session:    sessionStore,
		Cart:       cartStore,
		Catalog:    catalogStore,
		Theme:      themeStore,
		httpServer: httpServer,
	}, nil
}

// Run starts the observability HTTP server and blocks until the context is
// canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
		}
	}

	a.logger.Info("application shutdown complete")
	return nil
}
