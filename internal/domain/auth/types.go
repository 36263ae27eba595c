package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import "time"

// Identity represents the authenticated principal derived from a provider
// profile. Immutable after creation; adapters and the identity extractor map
// provider-specific claim shapes into this form.
type Identity struct {
	// ID is the stable user identifier (the provider subject).
	ID string `json:"id"`
	// Name is the display name, when the profile carried one.
	Name *string `json:"name"`
	// Email is the user's email, when the profile carried one.
	Email *string `json:"email"`
}

// PendingAuth is an in-flight authorization attempt, keyed by its CSRF state.
// It exists from the moment an authorization URL is issued until the callback
// redeems it or the cleanup task discards it.
type PendingAuth struct {
	// State is the opaque CSRF token round-tripped through the provider.
	State string
	// Verifier is the PKCE code verifier matching the challenge sent to the provider.
	Verifier string
	// Nonce binds the eventual ID token to this authentication request.
	Nonce string
	// CreatedAt timestamps the attempt for age-based expiry.
	CreatedAt time.Time
}

// Session is the server-side record we keep for an authenticated user.
// ID is an opaque random token and the only secret carried in the cookie.
type Session struct {
	ID       string   `json:"id"`
	Identity Identity `json:"identity"`
	// ExpiresAt is nil for sessions without expiry; such sessions live until
	// explicit logout or process restart.
	ExpiresAt *time.Time `json:"expires_at"`
	// RawProfile is the provider's userinfo response, kept untyped because
	// different providers return different claim shapes. Retained for
	// client-facing introspection only.
	RawProfile map[string]any `json:"raw_profile"`
}

// Expired reports whether the session's expiry has passed at the given instant.
// Sessions without an expiry never expire.
func (s Session) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && now.After(*s.ExpiresAt)
}

// Snapshot is the introspection view of a session returned to the client.
type Snapshot struct {
	User      Identity       `json:"user"`
	ExpiresAt *time.Time     `json:"expiresAt"`
	Profile   map[string]any `json:"profile"`
}

// Snapshot builds the client-facing view of the session.
func (s Session) Snapshot() Snapshot {
	return Snapshot{
		User:      s.Identity,
		ExpiresAt: s.ExpiresAt,
		Profile:   s.RawProfile,
	}
}
