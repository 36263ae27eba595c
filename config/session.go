package config

import (
	"fmt"
	"strings"
	"time"
)

// DefaultSessionTTL is applied when the configured TTL is missing or invalid.
// The same resolved value feeds both the cookie Max-Age and the session
// store's expiry computation so the two can never drift.
const DefaultSessionTTL = time.Hour

// SessionBackend selects where server-side sessions and pending auth
// states are kept.
type SessionBackend string

const (
	// SessionBackendMemory keeps sessions in process-local maps.
	SessionBackendMemory SessionBackend = "memory"
	// SessionBackendRedis keeps sessions in Redis for multi-process deployments.
	SessionBackendRedis SessionBackend = "redis"
)

// UnmarshalText implements encoding.TextUnmarshaler for SessionBackend.
func (b *SessionBackend) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "memory", "redis":
		*b = SessionBackend(v)
		return nil
	default:
		return fmt.Errorf("invalid SessionBackend: %q (valid options: memory, redis)", v)
	}
}

// SessionConfig contains session and cookie configuration.
type SessionConfig struct {
	// CookieName is the name of the session cookie.
	CookieName string `env:"COOKIE_NAME" envDefault:"ow_session"`

	// CookieDomain is the domain attribute for the session cookie.
	// Leave empty to use the request domain.
	CookieDomain string `env:"COOKIE_DOMAIN" envDefault:""`

	// CookieSecure controls the Secure attribute on the session cookie.
	CookieSecure bool `env:"COOKIE_SECURE" envDefault:"true"`

	// TTL is the session lifetime. Non-positive values fall back to
	// DefaultSessionTTL during Sanitize.
	TTL time.Duration `env:"TTL" envDefault:"1h"`

	// Backend selects the session store implementation.
	Backend SessionBackend `env:"BACKEND" envDefault:"memory"`
}

// Sanitize applies guardrails to session configuration values.
func (s *SessionConfig) Sanitize() {
	if s.TTL <= 0 {
		s.TTL = DefaultSessionTTL
	}
	if s.CookieName == "" {
		s.CookieName = "ow_session"
	}
	if s.Backend == "" {
		s.Backend = SessionBackendMemory
	}
}
