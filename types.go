package goSession

import (
	"context"
	"io"

	internalaudit "github.com/MrEthical07/goSession/internal/audit"
	internalmetrics "github.com/MrEthical07/goSession/internal/metrics"
	"github.com/MrEthical07/goSession/store"
)

// Record is the authenticated subject reference resolved from validated
// session fields. It is exclusively owned by the session that resolved it.
type Record = store.Record

// Ref identifies the durable slot a session commits into.
type Ref = store.Ref

// Well-known attribute keys. The lifecycle core treats attributes as opaque
// except for the tenant, which namespaces the committed reference.
const (
	AttrIdentifier = "identifier"
	AttrPassword   = "password"
	AttrTenantID   = "tenant_id"
)

// Validator decides whether a session's current attribute state is
// acceptable. Implementations append one message per failure to errs; an
// empty set after Validate means the session is valid. Validate must be
// re-entrant: the same input yields the same result, and it must not touch
// anything beyond errs.
type Validator interface {
	Validate(ctx context.Context, sess *Session, errs *ErrorSet)
}

// ValidatorFunc adapts a function to [Validator].
type ValidatorFunc func(ctx context.Context, sess *Session, errs *ErrorSet)

// Validate implements [Validator].
func (f ValidatorFunc) Validate(ctx context.Context, sess *Session, errs *ErrorSet) {
	f(ctx, sess, errs)
}

// RecordResolver produces the authenticated subject for a session whose
// validation already passed. Implementations typically re-use the lookup
// performed during validation; an error here is an infrastructure failure,
// not a validation failure, and propagates to the caller unchanged.
type RecordResolver interface {
	Resolve(ctx context.Context, sess *Session) (*Record, error)
}

// ResolverFunc adapts a function to [RecordResolver].
type ResolverFunc func(ctx context.Context, sess *Session) (*Record, error)

// Resolve implements [RecordResolver].
func (f ResolverFunc) Resolve(ctx context.Context, sess *Session) (*Record, error) {
	return f(ctx, sess)
}

// Store is the persistence contract consumed by the lifecycle: commit the
// record reference for a session, or clear it with a nil record. See
// [store.RedisStore], [store.TokenStore], and [store.MemoryStore].
type Store interface {
	Commit(ctx context.Context, ref Ref, rec *Record) error
}

// AuditEvent is a structured audit record emitted on lifecycle transitions.
type AuditEvent = internalaudit.Event

// AuditSink receives [AuditEvent] values from the definition's dispatcher.
type AuditSink = internalaudit.Sink

// NoOpSink is an [AuditSink] that silently discards all events.
type NoOpSink = internalaudit.NoOpSink

// ChannelSink is a buffered channel-based [AuditSink].
type ChannelSink = internalaudit.ChannelSink

// JSONWriterSink is an [AuditSink] that writes JSON-encoded events to an
// [io.Writer].
type JSONWriterSink = internalaudit.JSONWriterSink

// Audit event types.
const (
	EventSessionCreated   = internalaudit.EventSessionCreated
	EventSessionUpdated   = internalaudit.EventSessionUpdated
	EventSessionInvalid   = internalaudit.EventSessionInvalid
	EventSessionDestroyed = internalaudit.EventSessionDestroyed
)

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return internalaudit.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalaudit.NewJSONWriterSink(w)
}

// MetricID identifies a lifecycle counter.
type MetricID = internalmetrics.MetricID

const (
	// MetricSaveSuccess counts saves that passed validation and committed.
	MetricSaveSuccess = internalmetrics.MetricSaveSuccess
	// MetricSaveValidationFailed counts saves rejected by the validation gate.
	MetricSaveValidationFailed = internalmetrics.MetricSaveValidationFailed
	// MetricSaveExternalError counts saves aborted by resolver or store errors.
	MetricSaveExternalError = internalmetrics.MetricSaveExternalError
	// MetricSessionCreated counts first successful saves.
	MetricSessionCreated = internalmetrics.MetricSessionCreated
	// MetricSessionUpdated counts successful saves after the first.
	MetricSessionUpdated = internalmetrics.MetricSessionUpdated
	// MetricSessionDestroyed counts destroy calls that committed.
	MetricSessionDestroyed = internalmetrics.MetricSessionDestroyed
	// MetricCallbackInvocations counts individual hook executions.
	MetricCallbackInvocations = internalmetrics.MetricCallbackInvocations
)

// Metrics holds atomic lifecycle counters.
type Metrics = internalmetrics.Metrics

// MetricsSnapshot is a point-in-time copy of all counters.
type MetricsSnapshot = internalmetrics.Snapshot

// NewMetrics creates a [Metrics] instance configured by the given
// [MetricsConfig]. When Enabled is false, all operations are no-ops.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return internalmetrics.New(internalmetrics.Config{Enabled: cfg.Enabled})
}
