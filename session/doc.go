// Package session holds the authenticated identity for a single client
// instance and keeps it durable across process restarts.
//
// The current session is a single owned cell behind [Store]. All mutation goes
// through Set, Clear, and the one-shot Restore; readers go through Current and
// Loading. There is exactly one persisted entry, stored under a fixed key on a
// caller-supplied key-value surface, encoded by a pluggable [Codec].
package session
