package goSession

import (
	"context"
	"time"

	"github.com/MrEthical07/goSession/internal/flows"
	"github.com/MrEthical07/goSession/store"
)

// Session is the stateful object representing one authentication lifecycle.
// It is constructed new (never saved), becomes active on the first
// successful Save, and is terminated by Destroy. A Session is owned by a
// single goroutine; Save and Destroy run synchronously to completion.
type Session struct {
	id       string
	tenantID string
	attrs    map[string]string

	record *Record
	errors ErrorSet
	isNew  bool

	def *Definition
}

// ID returns the session's unique identifier, assigned at construction.
func (s *Session) ID() string {
	return s.id
}

// TenantID returns the tenant namespace the session commits under.
func (s *Session) TenantID() string {
	return s.tenantID
}

// IsNew reports whether the session has never been successfully saved. It is
// true from construction and flips to false exactly once, on the first
// successful Save; it never reverts.
func (s *Session) IsNew() bool {
	return s.isNew
}

// Record returns the authenticated subject, or nil. It is non-nil exactly
// when the session has completed at least one successful Save and has not
// since been destroyed.
func (s *Session) Record() *Record {
	return s.record
}

// Errors exposes the session's validation messages. The set is non-empty
// only immediately after a failed Save.
func (s *Session) Errors() *ErrorSet {
	return &s.errors
}

// Attribute returns a single session attribute.
func (s *Session) Attribute(key string) string {
	return s.attrs[key]
}

// SetAttribute mutates a session attribute before the next Save attempt.
func (s *Session) SetAttribute(key, value string) {
	if s.attrs == nil {
		s.attrs = make(map[string]string)
	}
	s.attrs[key] = value
	if key == AttrTenantID {
		s.tenantID = value
	}
}

// Attributes returns a copy of the session's attribute map.
func (s *Session) Attributes() map[string]string {
	out := make(map[string]string, len(s.attrs))
	for k, v := range s.attrs {
		out[k] = v
	}
	return out
}

// Save validates the session, resolves and commits the record, and fires
// the callback phase sequence (before_save, before_create/before_update,
// after_create/after_update, after_save). The bool reports the validation
// outcome: false with a nil error means the session is invalid and Errors()
// holds the messages. A non-nil error is an external resolver or store
// failure, propagated unchanged; in that case the record and newness are
// left as they were.
func (s *Session) Save(ctx context.Context) (bool, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	s.errors.Clear()
	prevRecord := s.record

	deps := flows.SaveDeps{
		IsNew:    s.isNew,
		Validate: s.runValidation,
		Resolve: func(ctx context.Context) error {
			rec, err := s.def.resolver.Resolve(ctx, s)
			if err != nil {
				return err
			}
			s.record = rec
			return nil
		},
		Commit: func(ctx context.Context) error {
			return s.def.store.Commit(ctx, s.ref(), s.record)
		},
		BeforeSave:   s.phaseFn(PhaseBeforeSave),
		BeforeCreate: s.phaseFn(PhaseBeforeCreate),
		AfterCreate:  s.phaseFn(PhaseAfterCreate),
		BeforeUpdate: s.phaseFn(PhaseBeforeUpdate),
		AfterUpdate:  s.phaseFn(PhaseAfterUpdate),
		AfterSave:    s.phaseFn(PhaseAfterSave),
		MarkSaved: func() {
			s.markSaved(ctx)
		},
	}

	ok, err := flows.RunSave(ctx, deps)
	if err != nil {
		s.record = prevRecord
		s.def.metrics.Inc(MetricSaveExternalError)
		s.def.logger.Error().Err(err).Str("session_id", s.id).Msg("session save aborted by external failure")
		return false, err
	}

	return ok, nil
}

// SaveStrict is Save with the boolean outcome converted into an error: a
// validation failure returns an [*InvalidError] carrying the current
// messages. External failures propagate unchanged, as with Save.
func (s *Session) SaveStrict(ctx context.Context) error {
	ok, err := s.Save(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return newInvalidError(&s.errors)
	}
	return nil
}

// Destroy terminates the session: fires before_destroy, commits a nil
// record, clears errors and record, then fires after_destroy. There is no
// validation gate and no failure mode of its own — only a store commit
// error surfaces, leaving local state untouched. Destroy is idempotent.
func (s *Session) Destroy(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	destroyedRecordID := ""
	if s.record != nil {
		destroyedRecordID = s.record.ID
	}

	deps := flows.DestroyDeps{
		BeforeDestroy: s.phaseFn(PhaseBeforeDestroy),
		AfterDestroy:  s.phaseFn(PhaseAfterDestroy),
		Commit: func(ctx context.Context) error {
			return s.def.store.Commit(ctx, s.ref(), nil)
		},
		Clear: func() {
			s.errors.Clear()
			s.record = nil
		},
	}

	if err := flows.RunDestroy(ctx, deps); err != nil {
		s.def.logger.Error().Err(err).Str("session_id", s.id).Msg("session destroy commit failed")
		return err
	}

	s.def.metrics.Inc(MetricSessionDestroyed)
	s.def.logger.Debug().Str("session_id", s.id).Msg("session destroyed")
	s.def.audit.Emit(ctx, AuditEvent{
		Timestamp: time.Now(),
		EventType: EventSessionDestroyed,
		SessionID: s.id,
		RecordID:  destroyedRecordID,
		TenantID:  s.tenantID,
		Success:   true,
	})

	return nil
}

func (s *Session) runValidation(ctx context.Context) bool {
	s.def.validator.Validate(ctx, s, &s.errors)
	if s.errors.Empty() {
		return true
	}

	s.def.metrics.Inc(MetricSaveValidationFailed)
	s.def.logger.Info().
		Str("session_id", s.id).
		Strs("messages", s.errors.Messages()).
		Msg("session validation failed")
	s.def.audit.Emit(ctx, AuditEvent{
		Timestamp: time.Now(),
		EventType: EventSessionInvalid,
		SessionID: s.id,
		TenantID:  s.tenantID,
		Success:   false,
		Messages:  s.errors.Messages(),
	})

	return false
}

func (s *Session) markSaved(ctx context.Context) {
	wasNew := s.isNew
	s.isNew = false

	s.def.metrics.Inc(MetricSaveSuccess)
	eventType := EventSessionUpdated
	if wasNew {
		eventType = EventSessionCreated
		s.def.metrics.Inc(MetricSessionCreated)
	} else {
		s.def.metrics.Inc(MetricSessionUpdated)
	}

	recordID := ""
	if s.record != nil {
		recordID = s.record.ID
	}

	s.def.logger.Debug().
		Str("session_id", s.id).
		Str("record_id", recordID).
		Bool("created", wasNew).
		Msg("session saved")
	s.def.audit.Emit(ctx, AuditEvent{
		Timestamp: time.Now(),
		EventType: eventType,
		SessionID: s.id,
		RecordID:  recordID,
		TenantID:  s.tenantID,
		Success:   true,
	})
}

func (s *Session) phaseFn(p Phase) func(context.Context) {
	return func(ctx context.Context) {
		n := s.def.callbacks.run(ctx, p, s)
		s.def.metrics.Add(MetricCallbackInvocations, uint64(n))
	}
}

func (s *Session) ref() store.Ref {
	tenant := s.tenantID
	if s.record != nil && s.record.TenantID != "" {
		tenant = s.record.TenantID
	}
	return store.Ref{SessionID: s.id, TenantID: tenant}
}
