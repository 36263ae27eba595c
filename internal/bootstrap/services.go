package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/order-wizard/ow-api/config"
	"github.com/order-wizard/ow-api/internal/adapters/cleaner"
	"github.com/order-wizard/ow-api/internal/data"
	httpx "github.com/order-wizard/ow-api/internal/http"
	"github.com/order-wizard/ow-api/internal/observability/statsd"
	"github.com/order-wizard/ow-api/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Auth    *service.AuthService
	Orders  *service.OrderService
	Metrics *statsd.Client
}

// ServiceDeps groups dependencies for NewServices.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	AuthService *service.AuthService
	Metrics     *statsd.Client
	Logger      *slog.Logger
}

// NewMetricsClient builds the StatsD client from config. Disabled config
// yields a client that drops every metric.
func NewMetricsClient(cfg *config.AppConfig, logger *slog.Logger) (*statsd.Client, error) {
	metrics, err := statsd.NewClient(statsd.Config{
		Enabled: cfg.Observability.Metrics.IsEnabled(),
		Address: cfg.Observability.Metrics.StatsdAddress,
		Prefix:  "ow_api",
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build statsd client: %w", err)
	}
	return metrics, nil
}

// NewServices constructs the application services from shared infrastructure.
func NewServices(deps ServiceDeps) (ServiceContainer, error) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	orders := service.NewOrderService(service.OrderServiceOptions{
		Repo:   data.NewOrderRepo(deps.DB),
		Logger: logger,
	})

	return ServiceContainer{
		Auth:    deps.AuthService,
		Orders:  orders,
		Metrics: deps.Metrics,
	}, nil
}

// RunConfig groups dependencies for Run.
type RunConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// Run starts the HTTP server and the cleanup runner, then blocks until a
// shutdown signal arrives or one of them fails.
func Run(ctx context.Context, cfg RunConfig) error {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	router := httpx.NewRouter(httpx.RouterServices{
		Auth:   cfg.Services.Auth,
		Orders: cfg.Services.Orders,
		HTTP:   cfg.Config.HTTP,
		OAuth:  cfg.Config.Auth.OAuth,
		Logger: logger,
	})

	addr := cfg.Config.HTTP.Addr
	if addr == "" {
		addr = ":8080"
	}
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	runner, err := cleaner.NewRunner(cleaner.RunnerOptions{
		Sweeper: cfg.Services.Auth,
		Config:  cfg.Config.Cleanup,
		Logger:  logger,
		Metrics: cfg.Services.Metrics,
	})
	if err != nil {
		return fmt.Errorf("build cleanup runner: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if serveErr := server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", serveErr)
		}
		return nil
	})

	g.Go(func() error {
		return runner.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("shutdown complete")
	return nil
}
