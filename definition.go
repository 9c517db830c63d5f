package goSession

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Definition is the configuration and factory surface for one session type.
// It owns the frozen callback registry, the validation gate, the record
// resolver, and the persistence store, and is shared read-only by every
// session it constructs. Build one via [Builder].
type Definition struct {
	config    Config
	callbacks *Callbacks
	validator Validator
	resolver  RecordResolver
	store     Store
	logger    zerolog.Logger
	audit     *auditDispatcher
	metrics   *Metrics
}

// New constructs a session in the new state: empty errors, no record,
// IsNew true. attrs is copied; the tenant attribute, when present, becomes
// the session's commit namespace.
func (d *Definition) New(attrs map[string]string) *Session {
	copied := make(map[string]string, len(attrs))
	for k, v := range attrs {
		copied[k] = v
	}

	return &Session{
		id:       uuid.NewString(),
		tenantID: copied[AttrTenantID],
		attrs:    copied,
		isNew:    true,
		def:      d,
	}
}

// Create constructs a session from attrs and immediately saves it. The
// session is returned regardless of outcome; inspect IsNew and Errors to
// distinguish success from validation failure. The error carries only
// external resolver/store failures. When attrs has no tenant, the tenant
// attached via [WithTenantID] is used.
func (d *Definition) Create(ctx context.Context, attrs map[string]string) (*Session, error) {
	sess := d.New(attrs)
	if sess.tenantID == "" {
		sess.tenantID = TenantIDFromContext(ctx)
	}

	_, err := sess.Save(ctx)
	return sess, err
}

// CreateStrict is Create with the strict save semantics: a validation
// failure returns the session together with an [*InvalidError].
func (d *Definition) CreateStrict(ctx context.Context, attrs map[string]string) (*Session, error) {
	sess := d.New(attrs)
	if sess.tenantID == "" {
		sess.tenantID = TenantIDFromContext(ctx)
	}

	return sess, sess.SaveStrict(ctx)
}

// Callbacks returns the frozen hook registry.
func (d *Definition) Callbacks() *Callbacks {
	return d.callbacks
}

// MetricsSnapshot returns a point-in-time copy of the lifecycle counters.
func (d *Definition) MetricsSnapshot() MetricsSnapshot {
	return d.metrics.Snapshot()
}

// AuditDropped reports how many audit events were discarded because the
// dispatcher buffer was full.
func (d *Definition) AuditDropped() uint64 {
	return d.audit.Dropped()
}

// Close stops the audit dispatcher after draining buffered events. Sessions
// constructed from the definition must not be saved or destroyed afterwards.
func (d *Definition) Close() {
	d.audit.Close()
}
