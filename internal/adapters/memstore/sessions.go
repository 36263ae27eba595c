package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/order-wizard/ow-api/internal/domain/auth"
)

// SessionStore keeps sessions in a map guarded by an RWMutex. Lookups are the
// hot path (every authenticated request resolves a cookie), so reads take the
// shared lock.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]auth.Session
	now      func() time.Time
	newID    func() string
}

// SessionStoreOptions configures a SessionStore.
type SessionStoreOptions struct {
	// Now overrides the clock, for tests. Defaults to time.Now.
	Now func() time.Time
	// NewID overrides session ID generation, for tests. Defaults to random
	// UUIDs.
	NewID func() string
}

// NewSessionStore creates an empty session store.
func NewSessionStore(opts SessionStoreOptions) *SessionStore {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	newID := opts.NewID
	if newID == nil {
		newID = func() string { return uuid.NewString() }
	}
	return &SessionStore{
		sessions: make(map[string]auth.Session),
		now:      now,
		newID:    newID,
	}
}

// Create stores a new session and returns it. A nil ttl yields a session
// without expiry.
func (s *SessionStore) Create(_ context.Context, identity auth.Identity, rawProfile map[string]any, ttl *time.Duration) (auth.Session, error) {
	sess := auth.Session{
		ID:         s.newID(),
		Identity:   identity,
		RawProfile: rawProfile,
	}
	if ttl != nil {
		exp := s.now().Add(*ttl)
		sess.ExpiresAt = &exp
	}
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess, nil
}

// Snapshot returns the session by ID without enforcing expiry.
func (s *SessionStore) Snapshot(_ context.Context, id string) (auth.Session, bool, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	return sess, ok, nil
}

// ResolveUserID returns the user ID for a live session. An expired session is
// treated as absent but left in place for the sweeper.
func (s *SessionStore) ResolveUserID(_ context.Context, id string) (string, bool, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok || sess.Expired(s.now()) {
		return "", false, nil
	}
	return sess.Identity.ID, true, nil
}

// Remove deletes the session. Unknown IDs are a no-op.
func (s *SessionStore) Remove(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}

// Sweep discards sessions whose expiry has passed.
func (s *SessionStore) Sweep(_ context.Context) (int, error) {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, sess := range s.sessions {
		if sess.Expired(now) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed, nil
}

// Len reports how many sessions are currently stored, expired ones included.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
