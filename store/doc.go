// Package store contains the persistence adapters that commit the current
// record reference for a session: a Redis-backed store for server-side
// session state, a signed-token store for stateless deployments, and an
// in-memory store for tests and examples.
//
// All adapters implement the same narrow contract: Commit(ctx, ref, record)
// persists the record reference under the session identity, and a nil record
// clears it. Adapters never interpret the record beyond encoding it.
package store
