package oidc

// Package oidc implements the auth provider port against a real OIDC issuer
// using discovery, the authorization-code flow and PKCE.

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/order-wizard/ow-api/internal/ports"
)

// Provider implements ports.AuthProvider over a discovered OIDC issuer.
type Provider struct {
	config       *oauth2.Config
	httpClient   *http.Client
	oidcProvider *gooidc.Provider
}

// ProviderConfig holds configuration for the OIDC provider.
type ProviderConfig struct {
	ClientID     string
	ClientSecret string
	IssuerURL    string
	RedirectURL  string
	Scopes       []string
	// HTTPClient is optional; defaults to a client with a 30s timeout.
	HTTPClient *http.Client
}

// NewProvider performs OIDC discovery against the issuer and builds the
// OAuth2 configuration from the discovered endpoints.
func NewProvider(ctx context.Context, cfg ProviderConfig) (*Provider, error) {
	if cfg.ClientID == "" {
		return nil, errors.New("client ID is required")
	}
	if cfg.ClientSecret == "" {
		return nil, errors.New("client secret is required")
	}
	if cfg.IssuerURL == "" {
		return nil, errors.New("issuer URL is required")
	}
	if cfg.RedirectURL == "" {
		return nil, errors.New("redirect URL is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	// Accept both the bare issuer and a full discovery URL.
	issuer := strings.TrimSuffix(cfg.IssuerURL, "/")
	issuer = strings.TrimSuffix(issuer, "/.well-known/openid-configuration")

	ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
	op, err := gooidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc discovery: %w", err)
	}

	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = []string{gooidc.ScopeOpenID}
	}

	return &Provider{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       scopes,
			Endpoint:     op.Endpoint(),
		},
		httpClient:   httpClient,
		oidcProvider: op,
	}, nil
}

// Begin generates state, PKCE verifier and nonce, and builds the provider
// authorization URL. Nothing is persisted here; the caller owns the pending
// record.
func (p *Provider) Begin(_ context.Context) (ports.BeginResult, error) {
	state, err := generateRandomString(32)
	if err != nil {
		return ports.BeginResult{}, fmt.Errorf("generate state: %w", err)
	}
	nonce, err := generateRandomString(32)
	if err != nil {
		return ports.BeginResult{}, fmt.Errorf("generate nonce: %w", err)
	}
	verifier := oauth2.GenerateVerifier()

	authURL := p.config.AuthCodeURL(state,
		oauth2.S256ChallengeOption(verifier),
		oauth2.SetAuthURLParam("nonce", nonce),
	)

	return ports.BeginResult{
		AuthURL:  authURL,
		State:    state,
		Verifier: verifier,
		Nonce:    nonce,
	}, nil
}

// Exchange redeems an authorization code carrying the PKCE verifier from the
// matching pending attempt.
func (p *Provider) Exchange(ctx context.Context, code, verifier string) (ports.TokenResult, error) {
	if code == "" {
		return ports.TokenResult{}, errors.New("authorization code is required")
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	token, err := p.config.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return ports.TokenResult{}, fmt.Errorf("exchange code for token: %w", err)
	}

	res := ports.TokenResult{AccessToken: token.AccessToken}
	if !token.Expiry.IsZero() {
		res.ExpiresIn = time.Until(token.Expiry)
	}
	return res, nil
}

// FetchUserInfo retrieves the raw profile from the userinfo endpoint. The
// claim shape varies per provider, so the payload stays untyped.
func (p *Provider) FetchUserInfo(ctx context.Context, accessToken string) (map[string]any, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	ui, err := p.oidcProvider.UserInfo(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken}))
	if err != nil {
		return nil, fmt.Errorf("fetch user info: %w", err)
	}
	var profile map[string]any
	if err := ui.Claims(&profile); err != nil {
		return nil, fmt.Errorf("decode user info: %w", err)
	}
	return profile, nil
}

// generateRandomString produces a URL-safe random string of exact length.
func generateRandomString(length int) (string, error) {
	if length <= 0 {
		return "", nil
	}
	nBytes := (length*3 + 3) / 4
	b := make([]byte, nBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	s := base64.RawURLEncoding.EncodeToString(b)
	if len(s) < length {
		extra := make([]byte, 1)
		if _, err := rand.Read(extra); err != nil {
			return "", err
		}
		s += base64.RawURLEncoding.EncodeToString(extra)
	}
	return s[:length], nil
}
