// Package flows holds the lifecycle orchestration run by the root package.
// Each flow is a pure function over a Deps struct of closures, so the
// ordering contract can be tested without a Redis client or a real
// definition behind it.
package flows
