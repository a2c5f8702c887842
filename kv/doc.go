// Package kv is the persisted key-value surface behind the session store.
//
// The contract is deliberately small: byte values under string keys, with a
// distinguished [ErrNotFound]. The session layer stores at most one entry
// under a fixed key; everything else about durability belongs to the backend.
package kv
