package oidc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type discoveryDocument struct {
	Issuer                string `json:"issuer"`
	AuthorizationEndpoint string `json:"authorization_endpoint"`
	TokenEndpoint         string `json:"token_endpoint"`
	UserinfoEndpoint      string `json:"userinfo_endpoint"`
	JwksURI               string `json:"jwks_uri"`
}

// newDiscoveryServer serves a minimal OIDC discovery document whose issuer is
// the server's own URL.
func newDiscoveryServer(t *testing.T) *httptest.Server {
	t.Helper()
	var issuer string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		doc := discoveryDocument{
			Issuer:                issuer,
			AuthorizationEndpoint: "https://idp.example.com/auth",
			TokenEndpoint:         "https://idp.example.com/token",
			UserinfoEndpoint:      "https://idp.example.com/userinfo",
			JwksURI:               "https://idp.example.com/jwks",
		}
		_ = json.NewEncoder(w).Encode(doc)
	}))
	issuer = server.URL
	t.Cleanup(server.Close)
	return server
}

func createTestProvider(t *testing.T) *Provider {
	t.Helper()
	server := newDiscoveryServer(t)

	provider, err := NewProvider(context.Background(), ProviderConfig{
		ClientID:     "test-client",
		ClientSecret: "test-secret",
		IssuerURL:    server.URL,
		RedirectURL:  "http://localhost:8080/auth/callback",
		Scopes:       []string{"openid", "email"},
	})
	require.NoError(t, err)
	return provider
}

func TestNewProvider_Success(t *testing.T) {
	provider := createTestProvider(t)
	assert.Equal(t, "https://idp.example.com/auth", provider.config.Endpoint.AuthURL)
	assert.Equal(t, "https://idp.example.com/token", provider.config.Endpoint.TokenURL)
}

func TestNewProvider_AcceptsDiscoveryURL(t *testing.T) {
	server := newDiscoveryServer(t)

	provider, err := NewProvider(context.Background(), ProviderConfig{
		ClientID:     "test-client",
		ClientSecret: "test-secret",
		IssuerURL:    server.URL + "/.well-known/openid-configuration",
		RedirectURL:  "http://localhost:8080/auth/callback",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://idp.example.com/auth", provider.config.Endpoint.AuthURL)
}

func TestNewProvider_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		config ProviderConfig
		errMsg string
	}{
		{
			name: "missing client ID",
			config: ProviderConfig{
				ClientSecret: "secret",
				IssuerURL:    "http://example.com",
				RedirectURL:  "http://localhost/callback",
			},
			errMsg: "client ID is required",
		},
		{
			name: "missing client secret",
			config: ProviderConfig{
				ClientID:    "client",
				IssuerURL:   "http://example.com",
				RedirectURL: "http://localhost/callback",
			},
			errMsg: "client secret is required",
		},
		{
			name: "missing issuer URL",
			config: ProviderConfig{
				ClientID:     "client",
				ClientSecret: "secret",
				RedirectURL:  "http://localhost/callback",
			},
			errMsg: "issuer URL is required",
		},
		{
			name: "missing redirect URL",
			config: ProviderConfig{
				ClientID:     "client",
				ClientSecret: "secret",
				IssuerURL:    "http://example.com",
			},
			errMsg: "redirect URL is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProvider(context.Background(), tt.config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestProvider_Begin(t *testing.T) {
	provider := createTestProvider(t)

	res, err := provider.Begin(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, res.AuthURL)
	assert.NotEmpty(t, res.State)
	assert.NotEmpty(t, res.Verifier)
	assert.NotEmpty(t, res.Nonce)

	u, err := url.Parse(res.AuthURL)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "test-client", q.Get("client_id"))
	assert.Equal(t, res.State, q.Get("state"))
	assert.Equal(t, res.Nonce, q.Get("nonce"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "S256", q.Get("code_challenge_method"))
	assert.NotEmpty(t, q.Get("code_challenge"))
	assert.Equal(t, "http://localhost:8080/auth/callback", q.Get("redirect_uri"))
}

func TestProvider_BeginUniquePerAttempt(t *testing.T) {
	provider := createTestProvider(t)
	ctx := context.Background()

	a, err := provider.Begin(ctx)
	require.NoError(t, err)
	b, err := provider.Begin(ctx)
	require.NoError(t, err)

	assert.NotEqual(t, a.State, b.State)
	assert.NotEqual(t, a.Verifier, b.Verifier)
	assert.NotEqual(t, a.Nonce, b.Nonce)
}

func TestProvider_ExchangeEmptyCode(t *testing.T) {
	provider := createTestProvider(t)

	_, err := provider.Exchange(context.Background(), "", "verifier")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "authorization code is required")
}

func TestGenerateRandomString(t *testing.T) {
	for _, length := range []int{0, 1, 16, 32, 43} {
		s, err := generateRandomString(length)
		require.NoError(t, err)
		assert.Len(t, s, length)
	}

	a, err := generateRandomString(32)
	require.NoError(t, err)
	b, err := generateRandomString(32)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
