package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/order-wizard/ow-api/config"
	"github.com/order-wizard/ow-api/internal/adapters/devauth"
	"github.com/order-wizard/ow-api/internal/adapters/memstore"
	"github.com/order-wizard/ow-api/internal/adapters/oidc"
	"github.com/order-wizard/ow-api/internal/adapters/redisstore"
	"github.com/order-wizard/ow-api/internal/observability/statsd"
	"github.com/order-wizard/ow-api/internal/ports"
	"github.com/order-wizard/ow-api/internal/service"
)

// AuthDeps groups dependencies for BuildAuthService.
type AuthDeps struct {
	Config      *config.AppConfig
	RedisClient redis.UniversalClient
	Metrics     statsd.Sink
	Logger      *slog.Logger
}

// BuildAuthService wires the auth provider and stores selected by config
// into an AuthService.
func BuildAuthService(ctx context.Context, deps AuthDeps) (*service.AuthService, error) {
	cfg := deps.Config

	pending, sessions, err := buildStores(cfg, deps.RedisClient)
	if err != nil {
		return nil, err
	}

	provider, err := buildProvider(ctx, cfg.Auth)
	if err != nil {
		return nil, err
	}

	return service.NewAuthService(service.AuthServiceOptions{
		Provider: provider,
		Pending:  pending,
		Sessions: sessions,
		Session:  cfg.Session,
		Cleanup:  cfg.Cleanup,
		Logger:   deps.Logger,
		Metrics:  deps.Metrics,
	}), nil
}

func buildStores(cfg *config.AppConfig, client redis.UniversalClient) (ports.PendingStore, ports.SessionStore, error) {
	switch cfg.Session.Backend {
	case config.SessionBackendRedis:
		if client == nil {
			return nil, nil, fmt.Errorf("session backend %q requires a redis connection", cfg.Session.Backend)
		}
		pending := redisstore.NewPendingStore(client, redisstore.PendingStoreOptions{
			MaxAge: cfg.Cleanup.PendingMaxAge,
		})
		sessions := redisstore.NewSessionStore(client, redisstore.SessionStoreOptions{})
		return pending, sessions, nil

	case config.SessionBackendMemory:
		pending := memstore.NewPendingStore(memstore.PendingStoreOptions{
			MaxAge: cfg.Cleanup.PendingMaxAge,
		})
		sessions := memstore.NewSessionStore(memstore.SessionStoreOptions{})
		return pending, sessions, nil

	default:
		return nil, nil, fmt.Errorf("unknown session backend %q", cfg.Session.Backend)
	}
}

//nolint:ireturn // the provider is selected at runtime by auth mode.
func buildProvider(ctx context.Context, cfg config.AuthConfig) (ports.AuthProvider, error) {
	switch cfg.Mode {
	case config.AuthModeMock:
		provider, err := devauth.NewProvider(devauth.Config{
			UserID: cfg.DevAuth.UserID,
			Name:   cfg.DevAuth.Name,
			Email:  cfg.DevAuth.Email,
		})
		if err != nil {
			return nil, fmt.Errorf("build dev auth provider: %w", err)
		}
		return provider, nil

	case config.AuthModeOAuth:
		provider, err := oidc.NewProvider(ctx, oidc.ProviderConfig{
			ClientID:     cfg.OAuth.ClientID,
			ClientSecret: cfg.OAuth.ClientSecret,
			IssuerURL:    cfg.OAuth.IssuerURL,
			RedirectURL:  cfg.OAuth.RedirectURL,
			Scopes:       cfg.OAuth.ScopeList(),
		})
		if err != nil {
			return nil, fmt.Errorf("build oidc provider: %w", err)
		}
		return provider, nil

	default:
		return nil, fmt.Errorf("unknown auth mode %q", cfg.Mode)
	}
}
