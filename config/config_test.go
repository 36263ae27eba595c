package config

import (
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMode_UnmarshalText(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    AuthMode
		expectError bool
	}{
		{name: "oauth", input: "oauth", expected: AuthModeOAuth},
		{name: "mock", input: "mock", expected: AuthModeMock},
		{name: "uppercase", input: "OAUTH", expected: AuthModeOAuth},
		{name: "invalid", input: "saml", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var mode AuthMode
			err := mode.UnmarshalText([]byte(tt.input))
			if tt.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, mode)
		})
	}
}

func TestSessionBackend_UnmarshalText(t *testing.T) {
	var b SessionBackend
	require.NoError(t, b.UnmarshalText([]byte("redis")))
	assert.Equal(t, SessionBackendRedis, b)

	require.Error(t, b.UnmarshalText([]byte("dynamo")))
}

func TestOAuthConfig_ScopeList(t *testing.T) {
	tests := []struct {
		name     string
		scopes   string
		expected []string
	}{
		{name: "space separated", scopes: "openid email", expected: []string{"openid", "email"}},
		{name: "comma separated", scopes: "openid,email,profile", expected: []string{"openid", "email", "profile"}},
		{name: "mixed with blanks", scopes: " openid , email  profile ", expected: []string{"openid", "email", "profile"}},
		{name: "empty", scopes: "", expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := OAuthConfig{Scopes: tt.scopes}
			assert.Equal(t, tt.expected, cfg.ScopeList())
		})
	}
}

func TestHTTPConfig_OriginList(t *testing.T) {
	cfg := HTTPConfig{AllowedOrigins: "http://localhost:5173, https://orders.example.com ,"}
	assert.Equal(t, []string{"http://localhost:5173", "https://orders.example.com"}, cfg.OriginList())
}

func TestSessionConfig_Sanitize_TTLFallback(t *testing.T) {
	tests := []struct {
		name     string
		ttl      time.Duration
		expected time.Duration
	}{
		{name: "zero falls back to default", ttl: 0, expected: DefaultSessionTTL},
		{name: "negative falls back to default", ttl: -time.Minute, expected: DefaultSessionTTL},
		{name: "valid value kept", ttl: 30 * time.Minute, expected: 30 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := SessionConfig{TTL: tt.ttl}
			cfg.Sanitize()
			assert.Equal(t, tt.expected, cfg.TTL)
			assert.Equal(t, "ow_session", cfg.CookieName)
			assert.Equal(t, SessionBackendMemory, cfg.Backend)
		})
	}
}

func TestCleanupConfig_Sanitize(t *testing.T) {
	cfg := CleanupConfig{Interval: -1, PendingMaxAge: 0}
	cfg.Sanitize()
	assert.Equal(t, 5*time.Minute, cfg.Interval)
	assert.Equal(t, 10*time.Minute, cfg.PendingMaxAge)
}

func TestAuthConfig_Sanitize_EmptyScopes(t *testing.T) {
	cfg := AuthConfig{OAuth: OAuthConfig{Scopes: " , "}}
	cfg.Sanitize()
	assert.Equal(t, []string{"openid"}, cfg.OAuth.ScopeList())
}

func TestAppConfig_ParsesDefaults(t *testing.T) {
	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, AuthModeOAuth, cfg.Auth.Mode)
	assert.Equal(t, DefaultSessionTTL, cfg.Session.TTL)
	assert.Equal(t, SessionBackendMemory, cfg.Session.Backend)
	assert.Equal(t, 10*time.Minute, cfg.Cleanup.PendingMaxAge)
	assert.True(t, cfg.Session.CookieSecure)
}

func TestObservabilityMetricsConfig_Sanitize(t *testing.T) {
	cfg := ObservabilityMetricsConfig{Enabled: true, StatsdAddress: "  "}
	cfg.Sanitize()
	assert.False(t, cfg.IsEnabled())
}
