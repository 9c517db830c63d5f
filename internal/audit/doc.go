// Package audit defines the lifecycle audit event model and sinks. The root
// package re-exports these types and runs the buffered dispatcher that
// feeds them.
package audit
