// Package goSession provides the session lifecycle core used by authentication
// frontends: a validated save/destroy state machine with ordered lifecycle
// callbacks and pluggable persistence (Redis-backed or signed-token stores).
//
// Sessions move through three logical states: new (constructed, never saved),
// active (validated, record resolved and committed), and destroyed (record
// cleared, nil commit persisted). Save gates every transition through the
// configured [Validator]; callbacks fire in a fixed phase order around the
// create/update distinction and never short-circuit the sequence.
//
// # Architecture boundaries
//
// goSession is the public surface. It exposes [Builder], [Definition],
// [Session], [Callbacks], and value types (Record, ErrorSet, AuditEvent).
// Flow orchestration, audit dispatch, and metrics live under internal/ and
// are never exported. Persistence adapters live under store/.
//
// # What this package must NOT do
//
//   - Verify credentials or hash passwords. Credential checks belong to the
//     [Validator] and [RecordResolver] implementations supplied by the caller.
//   - Expose Redis clients or encoding details in its public API.
//   - Catch or translate resolver/store errors. External failures propagate
//     to the caller unchanged.
//
// # Concurrency contract
//
// A [Definition] is immutable after [Builder.Build] and safe for concurrent
// use. Each [Session] is owned by a single goroutine; Save and Destroy run
// synchronously to completion.
package goSession
