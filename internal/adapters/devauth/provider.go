package devauth

// Package devauth provides a config-driven AuthProvider for local development.
// It short-circuits the OAuth flow by redirecting straight back to our own
// callback; Exchange and FetchUserInfo return the configured identity.

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/order-wizard/ow-api/internal/ports"
)

// Config controls the dev auth provider. UserID is required; Name and Email
// may be empty to exercise sparse-profile handling.
type Config struct {
	UserID string
	Name   string
	Email  string
}

// Provider implements ports.AuthProvider for local development.
type Provider struct {
	cfg Config
}

// NewProvider constructs a dev auth provider from Config.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.UserID == "" {
		return nil, errors.New("dev auth: UserID is required")
	}
	return &Provider{cfg: cfg}, nil
}

// Begin returns a local callback URL with freshly generated state, verifier
// and nonce. The callback handler treats the flow like any other.
func (p *Provider) Begin(_ context.Context) (ports.BeginResult, error) {
	state, err := randomString(24)
	if err != nil {
		return ports.BeginResult{}, fmt.Errorf("generate state: %w", err)
	}
	verifier, err := randomString(43)
	if err != nil {
		return ports.BeginResult{}, fmt.Errorf("generate verifier: %w", err)
	}
	nonce, err := randomString(24)
	if err != nil {
		return ports.BeginResult{}, fmt.Errorf("generate nonce: %w", err)
	}
	return ports.BeginResult{
		AuthURL:  "/auth/callback?code=dev&state=" + state,
		State:    state,
		Verifier: verifier,
		Nonce:    nonce,
	}, nil
}

// Exchange ignores the code and returns a static token.
func (p *Provider) Exchange(_ context.Context, code, _ string) (ports.TokenResult, error) {
	if code == "" {
		return ports.TokenResult{}, errors.New("authorization code is required")
	}
	return ports.TokenResult{AccessToken: "dev-token", ExpiresIn: 8 * time.Hour}, nil
}

// FetchUserInfo returns the configured identity as a standard OIDC profile.
func (p *Provider) FetchUserInfo(_ context.Context, _ string) (map[string]any, error) {
	profile := map[string]any{"sub": p.cfg.UserID}
	if p.cfg.Name != "" {
		profile["name"] = p.cfg.Name
	}
	if p.cfg.Email != "" {
		profile["email"] = p.cfg.Email
	}
	return profile, nil
}

func randomString(n int) (string, error) {
	if n <= 0 {
		return "", nil
	}
	bLen := (n*3 + 3) / 4
	b := make([]byte, bLen)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	s := base64.RawURLEncoding.EncodeToString(b)
	if len(s) < n {
		extra := make([]byte, 1)
		if _, err := rand.Read(extra); err != nil {
			return "", err
		}
		s += base64.RawURLEncoding.EncodeToString(extra)
	}
	return s[:n], nil
}
