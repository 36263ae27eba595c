package httpx

import (
	"io"
	"log/slog"

	"github.com/order-wizard/ow-api/config"
	"github.com/order-wizard/ow-api/internal/adapters/memstore"
	mockauth "github.com/order-wizard/ow-api/internal/mocks/auth"
	"github.com/order-wizard/ow-api/internal/service"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// authStack bundles a real auth service backed by in-memory stores and a
// mock identity provider, the usual fixture for handler tests.
type authStack struct {
	service  *service.AuthService
	provider *mockauth.MockAuthProvider
	pending  *memstore.PendingStore
	sessions *memstore.SessionStore
}

func newAuthStack() *authStack {
	provider := mockauth.NewMockAuthProvider()
	pending := memstore.NewPendingStore(memstore.PendingStoreOptions{})
	sessions := memstore.NewSessionStore(memstore.SessionStoreOptions{})

	svc := service.NewAuthService(service.AuthServiceOptions{
		Provider: provider,
		Pending:  pending,
		Sessions: sessions,
		Session:  config.SessionConfig{CookieName: "ow_session", TTL: config.DefaultSessionTTL},
		Logger:   discardLogger(),
	})

	return &authStack{service: svc, provider: provider, pending: pending, sessions: sessions}
}
