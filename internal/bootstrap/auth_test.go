package bootstrap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/order-wizard/ow-api/config"
)

func baseConfig() *config.AppConfig {
	cfg := &config.AppConfig{
		Auth: config.AuthConfig{
			Mode: config.AuthModeMock,
			DevAuth: config.DevAuthConfig{
				UserID: "dev-user",
				Name:   "Dev User",
				Email:  "dev@example.com",
			},
		},
		Session: config.SessionConfig{Backend: config.SessionBackendMemory},
	}
	cfg.Sanitize()
	return cfg
}

func TestBuildAuthService_MockMemory(t *testing.T) {
	svc, err := BuildAuthService(context.Background(), AuthDeps{Config: baseConfig()})
	require.NoError(t, err)
	require.NotNil(t, svc)

	// The wired service can complete a full mock login round trip.
	authURL, err := svc.BeginLogin(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, authURL)
}

func TestBuildAuthService_RedisBackendRequiresClient(t *testing.T) {
	cfg := baseConfig()
	cfg.Session.Backend = config.SessionBackendRedis

	_, err := BuildAuthService(context.Background(), AuthDeps{Config: cfg})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis")
}

func TestBuildAuthService_MockModeRequiresUserID(t *testing.T) {
	cfg := baseConfig()
	cfg.Auth.DevAuth.UserID = ""

	_, err := BuildAuthService(context.Background(), AuthDeps{Config: cfg})
	require.Error(t, err)
}

func TestBuildAuthService_UnknownMode(t *testing.T) {
	cfg := baseConfig()
	cfg.Auth.Mode = "saml"

	_, err := BuildAuthService(context.Background(), AuthDeps{Config: cfg})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown auth mode")
}
