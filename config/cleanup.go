package config

import "time"

const (
	// DefaultCleanupInterval is how often the cleanup sweep runs unless
	// configured otherwise.
	DefaultCleanupInterval = 5 * time.Minute

	// DefaultPendingMaxAge bounds how long an authorization attempt may sit
	// unredeemed.
	DefaultPendingMaxAge = 10 * time.Minute
)

// CleanupConfig contains configuration for the expired-state cleanup task.
type CleanupConfig struct {
	// Interval is how often the cleanup sweep runs.
	Interval time.Duration `env:"INTERVAL" envDefault:"5m"`

	// PendingMaxAge is how long an in-flight authorization attempt may sit
	// unredeemed before it is discarded.
	PendingMaxAge time.Duration `env:"PENDING_MAX_AGE" envDefault:"10m"`
}

// Sanitize applies guardrails to cleanup configuration values.
func (c *CleanupConfig) Sanitize() {
	if c.Interval <= 0 {
		c.Interval = DefaultCleanupInterval
	}
	if c.PendingMaxAge <= 0 {
		c.PendingMaxAge = DefaultPendingMaxAge
	}
}
