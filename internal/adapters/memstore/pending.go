// Package memstore provides in-process implementations of the pending-auth
// and session stores. They are the default backend; the redisstore package
// offers the same contracts backed by Redis for multi-instance deployments.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/order-wizard/ow-api/internal/domain/auth"
)

// PendingStore keeps in-flight authorization attempts in a map guarded by a
// mutex. Reads and writes are short critical sections; no provider I/O ever
// happens under the lock.
type PendingStore struct {
	mu      sync.Mutex
	pending map[string]auth.PendingAuth
	maxAge  time.Duration
	now     func() time.Time
}

// PendingStoreOptions configures a PendingStore.
type PendingStoreOptions struct {
	// MaxAge bounds how old an attempt may be when taken. Defaults to 10
	// minutes.
	MaxAge time.Duration
	// Now overrides the clock, for tests. Defaults to time.Now.
	Now func() time.Time
}

// NewPendingStore creates an empty pending-auth store.
func NewPendingStore(opts PendingStoreOptions) *PendingStore {
	maxAge := opts.MaxAge
	if maxAge <= 0 {
		maxAge = 10 * time.Minute
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &PendingStore{
		pending: make(map[string]auth.PendingAuth),
		maxAge:  maxAge,
		now:     now,
	}
}

// Store persists a pending attempt, overwriting any previous attempt with the
// same state.
func (s *PendingStore) Store(_ context.Context, p auth.PendingAuth) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[p.State] = p
	return nil
}

// Take removes and returns the attempt for state. Each state is redeemable at
// most once; the second caller sees ok false. An attempt older than the max
// age is removed but not returned, so a stale state is never honored even if
// no sweep has run yet.
func (s *PendingStore) Take(_ context.Context, state string) (auth.PendingAuth, bool, error) {
	cutoff := s.now().Add(-s.maxAge)
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pending[state]
	if !ok {
		return auth.PendingAuth{}, false, nil
	}
	delete(s.pending, state)
	if p.CreatedAt.Before(cutoff) {
		return auth.PendingAuth{}, false, nil
	}
	return p, ok, nil
}

// Sweep discards attempts older than maxAge.
func (s *PendingStore) Sweep(_ context.Context, maxAge time.Duration) (int, error) {
	cutoff := s.now().Add(-maxAge)
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for state, p := range s.pending {
		if p.CreatedAt.Before(cutoff) {
			delete(s.pending, state)
			removed++
		}
	}
	return removed, nil
}

// Len reports how many attempts are currently pending.
func (s *PendingStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
