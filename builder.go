package goSession

import (
	"errors"

	"github.com/MrEthical07/goSession/store"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Builder assembles a [Definition]. Configure it fluently, then call Build
// exactly once; the resulting definition is immutable.
type Builder struct {
	config    Config
	redis     redis.UniversalClient
	store     Store
	validator Validator
	resolver  RecordResolver
	callbacks *Callbacks
	logger    *zerolog.Logger
	auditSink AuditSink

	err   error
	built bool
}

// New returns a [Builder] seeded with [DefaultConfig].
func New() *Builder {
	return &Builder{
		config: DefaultConfig(),
	}
}

// WithConfig replaces the builder's configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithRedis supplies a Redis client; Build constructs a [store.RedisStore]
// from it using the session configuration. Ignored when WithStore is set.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithStore supplies a persistence adapter directly, e.g. a
// [store.TokenStore] or [store.MemoryStore].
func (b *Builder) WithStore(st Store) *Builder {
	b.store = st
	return b
}

// WithValidator supplies the validation gate. Required.
func (b *Builder) WithValidator(v Validator) *Builder {
	b.validator = v
	return b
}

// WithResolver supplies the record resolver. Required.
func (b *Builder) WithResolver(r RecordResolver) *Builder {
	b.resolver = r
	return b
}

// WithCallbacks supplies a pre-populated hook registry. Build freezes it.
func (b *Builder) WithCallbacks(cb *Callbacks) *Builder {
	b.callbacks = cb
	return b
}

// OnPhase registers a hook on the builder's registry, creating it on first
// use. Registration errors surface from Build.
func (b *Builder) OnPhase(phase Phase, hook Hook) *Builder {
	if b.callbacks == nil {
		b.callbacks = NewCallbacks()
	}
	if err := b.callbacks.Register(phase, hook); err != nil && b.err == nil {
		b.err = err
	}
	return b
}

// WithLogger supplies a zerolog logger for lifecycle logging. Unset means
// logging is disabled.
func (b *Builder) WithLogger(logger zerolog.Logger) *Builder {
	b.logger = &logger
	return b
}

// WithAuditSink supplies the sink fed by the audit dispatcher. Only used
// when the audit configuration is enabled.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithMetricsEnabled toggles metric collection.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build validates the wiring and returns the immutable [Definition].
func (b *Builder) Build() (*Definition, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}
	if b.err != nil {
		return nil, b.err
	}

	cfg := b.config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if b.validator == nil {
		return nil, errors.New("validator required")
	}
	if b.resolver == nil {
		return nil, errors.New("resolver required")
	}

	st := b.store
	if st == nil {
		if b.redis == nil {
			return nil, errors.New("store or redis client required")
		}
		st = store.NewRedisStore(
			b.redis,
			cfg.Session.RedisPrefix,
			cfg.Session.TTL,
			cfg.Session.SlidingExpiration,
		)
	}

	cb := b.callbacks
	if cb == nil {
		cb = NewCallbacks()
	}
	cb.Freeze()

	logger := zerolog.Nop()
	if b.logger != nil {
		logger = *b.logger
	}

	def := &Definition{
		config:    cfg,
		callbacks: cb,
		validator: b.validator,
		resolver:  b.resolver,
		store:     st,
		logger:    logger,
		audit:     newAuditDispatcher(cfg.Audit, b.auditSink),
		metrics:   NewMetrics(cfg.Metrics),
	}

	b.built = true

	return def, nil
}
