// Package clientcore is the client-resident session and authorization core of
// the Hirewire job portal client: a session store with durable restore, an
// authenticator over an external credential verifier, a pure role-based
// authorization guard, and a bounded notification queue.
//
// The package is designed for a single user's client process: Engine methods
// are safe to call from multiple goroutines after initialization through
// [Builder.Build], but overlapping Login/Register calls resolve
// last-write-wins and callers must not allow re-entrant submission while an
// authentication call is outstanding.
//
// # Architecture boundaries
//
// clientcore is the public surface. It exposes [Engine], [Builder], [Config],
// and value types (MetricsSnapshot, Event, etc.). View rendering, routing
// tables, and the network live outside; the core sees them only through the
// [Verifier] collaborator, the kv.Store persistence surface, and the
// notify.Queue observer boundary.
//
// # What this package must NOT do
//
//   - Render anything, or know what a route name resolves to.
//   - Verify credentials itself; that is the Verifier's contract.
//   - Surface a corrupt persisted session as an error: restore always
//     resolves to a session or to logged-out, never to a failure.
package clientcore
