package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"fmt"
	"time"

	"github.com/order-wizard/ow-api/internal/ports"
)

// Ensure compile-time conformance to ports.
var _ ports.AuthProvider = (*MockAuthProvider)(nil)

// MockAuthProvider simulates an IdP for tests with deterministic state,
// verifier and nonce handling.
type MockAuthProvider struct {
	BeginFunc         func(ctx context.Context) (ports.BeginResult, error)
	ExchangeFunc      func(ctx context.Context, code, verifier string) (ports.TokenResult, error)
	FetchUserInfoFunc func(ctx context.Context, accessToken string) (map[string]any, error)

	// Deterministic defaults used when the funcs above are nil.
	AuthURL string
	Profile map[string]any

	callCount int
}

// NewMockAuthProvider creates a MockAuthProvider with sensible defaults.
func NewMockAuthProvider() *MockAuthProvider {
	return &MockAuthProvider{
		AuthURL: "https://mock-idp/auth",
		Profile: map[string]any{
			"sub":   "mock-user-1",
			"name":  "Mock User",
			"email": "mock.user@example.com",
		},
	}
}

func (m *MockAuthProvider) Begin(ctx context.Context) (ports.BeginResult, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.callCount++
	state := fmt.Sprintf("state-%d", m.callCount)
	return ports.BeginResult{
		AuthURL:  m.AuthURL + "?state=" + state,
		State:    state,
		Verifier: fmt.Sprintf("verifier-%d", m.callCount),
		Nonce:    fmt.Sprintf("nonce-%d", m.callCount),
	}, nil
}

func (m *MockAuthProvider) Exchange(ctx context.Context, code, verifier string) (ports.TokenResult, error) {
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, code, verifier)
	}
	return ports.TokenResult{AccessToken: "mock-token-" + code, ExpiresIn: time.Hour}, nil
}

func (m *MockAuthProvider) FetchUserInfo(ctx context.Context, accessToken string) (map[string]any, error) {
	if m.FetchUserInfoFunc != nil {
		return m.FetchUserInfoFunc(ctx, accessToken)
	}
	return m.Profile, nil
}
