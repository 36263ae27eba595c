// Package redisstore provides Redis-backed implementations of the pending-auth
// and session stores for multi-instance deployments. Expiry is delegated to
// Redis key TTLs, so sweeps are cheap no-ops server-side.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	domainauth "github.com/order-wizard/ow-api/internal/domain/auth"
)

// SessionStore persists sessions as JSON values under a key prefix.
type SessionStore struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
	newID  func() string
}

// SessionStoreOptions configures a SessionStore.
type SessionStoreOptions struct {
	// Prefix namespaces session keys. Defaults to "session:".
	Prefix string
	// Now overrides the clock, for tests. Defaults to time.Now.
	Now func() time.Time
	// NewID overrides session ID generation, for tests.
	NewID func() string
}

// NewSessionStore creates a session store over the given Redis client.
func NewSessionStore(client redis.UniversalClient, opts SessionStoreOptions) *SessionStore {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = "session:"
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	newID := opts.NewID
	if newID == nil {
		newID = func() string { return uuid.NewString() }
	}
	return &SessionStore{client: client, prefix: prefix, now: now, newID: newID}
}

// Create stores a new session and returns it. A nil ttl stores the session
// without a Redis TTL, so it lives until explicit removal.
func (s *SessionStore) Create(ctx context.Context, identity domainauth.Identity, rawProfile map[string]any, ttl *time.Duration) (domainauth.Session, error) {
	sess := domainauth.Session{
		ID:         s.newID(),
		Identity:   identity,
		RawProfile: rawProfile,
	}
	var expiry time.Duration
	if ttl != nil {
		exp := s.now().Add(*ttl)
		sess.ExpiresAt = &exp
		expiry = *ttl
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, s.prefix+sess.ID, data, expiry).Err(); err != nil {
		return domainauth.Session{}, fmt.Errorf("redis set: %w", err)
	}
	return sess, nil
}

// Snapshot returns the session by ID without enforcing its recorded expiry.
// Redis normally evicts expired keys before this sees them, but a stored
// record with a past ExpiresAt is still returned as-is.
func (s *SessionStore) Snapshot(ctx context.Context, id string) (domainauth.Session, bool, error) {
	if id == "" {
		return domainauth.Session{}, false, nil
	}
	data, err := s.client.Get(ctx, s.prefix+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainauth.Session{}, false, nil
		}
		return domainauth.Session{}, false, fmt.Errorf("redis get: %w", err)
	}
	var sess domainauth.Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return domainauth.Session{}, false, fmt.Errorf("unmarshal session: %w", err)
	}
	return sess, true, nil
}

// ResolveUserID returns the user ID for a live session.
func (s *SessionStore) ResolveUserID(ctx context.Context, id string) (string, bool, error) {
	sess, ok, err := s.Snapshot(ctx, id)
	if err != nil || !ok {
		return "", false, err
	}
	if sess.Expired(s.now()) {
		return "", false, nil
	}
	return sess.Identity.ID, true, nil
}

// Remove deletes the session. Unknown IDs are a no-op.
func (s *SessionStore) Remove(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.client.Del(ctx, s.prefix+id).Err()
}

// Sweep is a no-op for Redis: key TTLs evict expired sessions server-side.
func (s *SessionStore) Sweep(context.Context) (int, error) {
	return 0, nil
}
