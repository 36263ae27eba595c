package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/order-wizard/ow-api/config"
	"github.com/order-wizard/ow-api/internal/bootstrap"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "starting ow-api",
		"addr", cfg.HTTP.Addr,
		"auth_mode", cfg.Auth.Mode,
		"session_backend", cfg.Session.Backend,
		"db_host", cfg.Postgres.Host,
		"db_name", cfg.Postgres.Name,
	)

	db, err := bootstrap.ConnectDB(cfg.Postgres, logger)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close database failed", "error", cerr)
		}
	}()

	if cfg.Postgres.RunMigrationsOnStart {
		if err = bootstrap.RunMigrations(ctx, db, logger); err != nil {
			return err
		}
	} else {
		logger.InfoContext(ctx, "skipping database migrations on startup", "reason", "disabled via config")
	}

	metrics, err := bootstrap.NewMetricsClient(&cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := metrics.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close statsd client failed", "error", cerr)
		}
	}()

	authDeps := bootstrap.AuthDeps{Config: &cfg, Metrics: metrics, Logger: logger}
	if cfg.Session.Backend == config.SessionBackendRedis {
		redisClient, rerr := bootstrap.ConnectRedis(cfg.Redis, logger)
		if rerr != nil {
			return fmt.Errorf("connect redis: %w", rerr)
		}
		defer func() {
			if cerr := redisClient.Close(); cerr != nil {
				logger.ErrorContext(ctx, "close redis failed", "error", cerr)
			}
		}()
		authDeps.RedisClient = redisClient
	}

	authService, err := bootstrap.BuildAuthService(ctx, authDeps)
	if err != nil {
		return fmt.Errorf("build auth service: %w", err)
	}

	services, err := bootstrap.NewServices(bootstrap.ServiceDeps{
		Config:      &cfg,
		DB:          db,
		AuthService: authService,
		Metrics:     metrics,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	return bootstrap.Run(ctx, bootstrap.RunConfig{
		Config:   &cfg,
		Services: services,
		Logger:   logger,
	})
}
