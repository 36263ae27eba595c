// Package ports defines the interfaces between the service layer and its
// adapters. Services depend on these, never on concrete adapters.
package ports

import (
	"context"
	"time"

	"github.com/order-wizard/ow-api/internal/domain/auth"
)

// BeginResult is everything an auth provider produces when starting a login.
// The caller persists State/Verifier/Nonce as a pending attempt and redirects
// the browser to AuthURL.
type BeginResult struct {
	AuthURL  string
	State    string
	Verifier string
	Nonce    string
}

// TokenResult is the outcome of redeeming an authorization code.
type TokenResult struct {
	AccessToken string
	// ExpiresIn is the token lifetime reported by the provider; zero when the
	// provider did not report one. Informational only, session lifetime is
	// configured separately.
	ExpiresIn time.Duration
}

// AuthProvider abstracts the identity provider. The OIDC adapter implements
// it against a real issuer; the dev adapter fakes it for local work.
type AuthProvider interface {
	// Begin generates the state, PKCE verifier and nonce for a new attempt
	// and builds the provider authorization URL. It performs no I/O beyond
	// what discovery already cached and does not persist anything.
	Begin(ctx context.Context) (BeginResult, error)

	// Exchange redeems an authorization code using the PKCE verifier from
	// the matching pending attempt.
	Exchange(ctx context.Context, code, verifier string) (TokenResult, error)

	// FetchUserInfo retrieves the raw profile for the given access token.
	FetchUserInfo(ctx context.Context, accessToken string) (map[string]any, error)
}

// PendingStore holds in-flight authorization attempts keyed by CSRF state.
type PendingStore interface {
	// Store persists a pending attempt. A duplicate state overwrites.
	Store(ctx context.Context, p auth.PendingAuth) error

	// Take removes and returns the attempt for state. The removal happens
	// whether or not the caller goes on to succeed; a state is redeemable
	// exactly once. ok is false when no attempt exists.
	Take(ctx context.Context, state string) (p auth.PendingAuth, ok bool, err error)

	// Sweep discards attempts older than maxAge and returns how many were
	// removed.
	Sweep(ctx context.Context, maxAge time.Duration) (int, error)
}

// SessionStore persists authenticated sessions. Implementations generate the
// session ID and compute the expiry from ttl at creation time.
type SessionStore interface {
	// Create stores a new session for the identity and returns it. A nil
	// ttl produces a session without expiry.
	Create(ctx context.Context, identity auth.Identity, rawProfile map[string]any, ttl *time.Duration) (auth.Session, error)

	// Snapshot returns the session by ID without enforcing expiry, so
	// clients can introspect a stale session before it is swept. ok is
	// false when the ID is unknown.
	Snapshot(ctx context.Context, id string) (s auth.Session, ok bool, err error)

	// ResolveUserID returns the user ID for a live session. Expired or
	// unknown sessions yield ok false.
	ResolveUserID(ctx context.Context, id string) (userID string, ok bool, err error)

	// Remove deletes the session. Removing an unknown ID is not an error.
	Remove(ctx context.Context, id string) error

	// Sweep discards sessions whose expiry has passed and returns how many
	// were removed. Sessions without expiry are never swept.
	Sweep(ctx context.Context) (int, error)
}
