package goSession

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionInvalid is the sentinel wrapped by [InvalidError]. Use
	// errors.Is(err, ErrSessionInvalid) to detect strict-save failures.
	ErrSessionInvalid = errors.New("session is invalid")
	// ErrCallbacksFrozen is returned by [Callbacks.Register] after Freeze.
	ErrCallbacksFrozen = errors.New("callbacks frozen")
	// ErrInvalidPhase is returned when a hook targets an unknown phase.
	ErrInvalidPhase = errors.New("invalid callback phase")
	// ErrNilHook is returned when a nil hook is registered.
	ErrNilHook = errors.New("nil hook")
)

// InvalidError is raised by SaveStrict and CreateStrict when validation
// fails. It carries the session's validation messages at the time of the
// call, rendered into a single sentence.
type InvalidError struct {
	messages []string
}

func newInvalidError(errs *ErrorSet) *InvalidError {
	return &InvalidError{messages: errs.Messages()}
}

// Error renders the fixed prefix plus all validation messages joined into a
// natural-language sentence ("a, b, and c").
func (e *InvalidError) Error() string {
	return fmt.Sprintf("%v: %s", ErrSessionInvalid, joinSentence(e.messages))
}

// Unwrap makes errors.Is(err, ErrSessionInvalid) hold.
func (e *InvalidError) Unwrap() error {
	return ErrSessionInvalid
}

// Messages returns a copy of the validation messages carried by the error.
func (e *InvalidError) Messages() []string {
	out := make([]string, len(e.messages))
	copy(out, e.messages)
	return out
}
