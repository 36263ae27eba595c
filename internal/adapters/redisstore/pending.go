package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domainauth "github.com/order-wizard/ow-api/internal/domain/auth"
)

// PendingStore persists in-flight authorization attempts as JSON values with
// a Redis TTL matching the pending max age. Take uses GETDEL so the
// remove-on-read happens atomically even across instances.
type PendingStore struct {
	client redis.UniversalClient
	prefix string
	maxAge time.Duration
}

// PendingStoreOptions configures a PendingStore.
type PendingStoreOptions struct {
	// Prefix namespaces pending keys. Defaults to "pending_auth:".
	Prefix string
	// MaxAge is the key TTL applied on Store. Defaults to 10 minutes.
	MaxAge time.Duration
}

// NewPendingStore creates a pending-auth store over the given Redis client.
func NewPendingStore(client redis.UniversalClient, opts PendingStoreOptions) *PendingStore {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = "pending_auth:"
	}
	maxAge := opts.MaxAge
	if maxAge <= 0 {
		maxAge = 10 * time.Minute
	}
	return &PendingStore{client: client, prefix: prefix, maxAge: maxAge}
}

// Store persists a pending attempt under its state.
func (s *PendingStore) Store(ctx context.Context, p domainauth.PendingAuth) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal pending auth: %w", err)
	}
	return s.client.Set(ctx, s.prefix+p.State, data, s.maxAge).Err()
}

// Take atomically removes and returns the attempt for state.
func (s *PendingStore) Take(ctx context.Context, state string) (domainauth.PendingAuth, bool, error) {
	if state == "" {
		return domainauth.PendingAuth{}, false, nil
	}
	data, err := s.client.GetDel(ctx, s.prefix+state).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainauth.PendingAuth{}, false, nil
		}
		return domainauth.PendingAuth{}, false, fmt.Errorf("redis getdel: %w", err)
	}
	var p domainauth.PendingAuth
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return domainauth.PendingAuth{}, false, fmt.Errorf("unmarshal pending auth: %w", err)
	}
	return p, true, nil
}

// Sweep is a no-op for Redis: key TTLs evict stale attempts server-side.
func (s *PendingStore) Sweep(context.Context, time.Duration) (int, error) {
	return 0, nil
}
