package goSession

import (
	"context"
	"sync"
)

// Phase is a named point in the save/destroy sequence at which registered
// hooks run.
type Phase uint8

const (
	// PhaseBeforeSave fires first on every save attempt that passed validation.
	PhaseBeforeSave Phase = iota
	// PhaseBeforeCreate fires on the first save of a session, after PhaseBeforeSave.
	PhaseBeforeCreate
	// PhaseAfterCreate fires on the first save of a session, before PhaseAfterSave.
	PhaseAfterCreate
	// PhaseBeforeUpdate fires on every save after the first, after PhaseBeforeSave.
	PhaseBeforeUpdate
	// PhaseAfterUpdate fires on every save after the first, before PhaseAfterSave.
	PhaseAfterUpdate
	// PhaseAfterSave fires last on every save attempt that passed validation.
	PhaseAfterSave
	// PhaseBeforeDestroy fires before the nil commit on destroy.
	PhaseBeforeDestroy
	// PhaseAfterDestroy fires after local state is cleared on destroy.
	PhaseAfterDestroy

	phaseCount
)

var phaseNames = [phaseCount]string{
	"before_save",
	"before_create",
	"after_create",
	"before_update",
	"after_update",
	"after_save",
	"before_destroy",
	"after_destroy",
}

// String returns the canonical snake_case phase name.
func (p Phase) String() string {
	if p >= phaseCount {
		return "unknown"
	}
	return phaseNames[p]
}

// Hook is a lifecycle callback. Hooks are cooperative: they cannot fail or
// skip the remainder of the phase sequence. A hook that must abort the
// request has to panic or record state for the caller; the pipeline itself
// always runs to completion.
type Hook func(ctx context.Context, sess *Session)

// Callbacks is the ordered, named-phase hook registry shared by all sessions
// of a [Definition]. Register hooks during configuration, then Freeze; after
// that the registry is read-only and safe for concurrent use by any number
// of sessions. [Builder.Build] freezes the registry it is given.
type Callbacks struct {
	mu     sync.RWMutex
	hooks  [phaseCount][]Hook
	frozen bool
}

// NewCallbacks returns an empty registry.
func NewCallbacks() *Callbacks {
	return &Callbacks{}
}

// Register appends a hook to the given phase. Hooks within a phase run in
// registration order. Must be called before [Callbacks.Freeze].
func (c *Callbacks) Register(phase Phase, hook Hook) error {
	if phase >= phaseCount {
		return ErrInvalidPhase
	}
	if hook == nil {
		return ErrNilHook
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.frozen {
		return ErrCallbacksFrozen
	}

	c.hooks[phase] = append(c.hooks[phase], hook)
	return nil
}

// Freeze prevents further registrations. Idempotent.
func (c *Callbacks) Freeze() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frozen = true
}

// Len returns the number of hooks registered for a phase.
func (c *Callbacks) Len(phase Phase) int {
	if phase >= phaseCount {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.hooks[phase])
}

// run fires every hook of the phase in registration order and returns the
// number of hooks executed. Hook outcomes never affect the sequence.
func (c *Callbacks) run(ctx context.Context, phase Phase, sess *Session) int {
	if c == nil || phase >= phaseCount {
		return 0
	}

	c.mu.RLock()
	hooks := c.hooks[phase]
	c.mu.RUnlock()

	for _, hook := range hooks {
		hook(ctx, sess)
	}
	return len(hooks)
}
