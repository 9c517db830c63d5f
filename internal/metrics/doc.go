// Package metrics implements the in-process lifecycle counters. Counters
// are plain atomics so the hot path never allocates or locks; a disabled
// instance turns every operation into a no-op.
package metrics
