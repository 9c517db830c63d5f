package goSession

import (
	"errors"
	"time"
)

// Config wires a [Definition]. Configure once, pass to [Builder.WithConfig],
// and treat as immutable afterwards.
type Config struct {
	Session SessionConfig
	Audit   AuditConfig
	Metrics MetricsConfig
}

// SessionConfig controls the Redis store built by [Builder.WithRedis].
type SessionConfig struct {
	RedisPrefix       string
	TTL               time.Duration
	SlidingExpiration bool
}

// AuditConfig controls the audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	// DropIfFull makes Emit non-blocking: events beyond the buffer are
	// counted and discarded instead of blocking the lifecycle.
	DropIfFull bool
}

// MetricsConfig controls metric collection.
type MetricsConfig struct {
	Enabled bool
}

// DefaultConfig returns the baseline configuration: 24h session TTL under
// the "gs" prefix, audit and metrics disabled.
func DefaultConfig() Config {
	return Config{
		Session: SessionConfig{
			RedisPrefix:       "gs",
			TTL:               24 * time.Hour,
			SlidingExpiration: false,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: false,
		},
	}
}

// Validate checks the configuration for values that would misbehave at
// runtime.
func (c Config) Validate() error {
	if c.Session.RedisPrefix == "" {
		return errors.New("session redis prefix must not be empty")
	}
	if c.Session.TTL <= 0 {
		return errors.New("session TTL must be positive")
	}
	if c.Audit.Enabled && c.Audit.BufferSize < 0 {
		return errors.New("audit buffer size must not be negative")
	}
	return nil
}
