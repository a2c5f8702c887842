package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/hirewire/clientcore/kv"
)

// DefaultStorageKey is the fixed key the persisted session record lives under.
const DefaultStorageKey = "hirewire:session"

// Store is the single source of truth for "who is logged in". It owns the
// current session cell, restores it once from the persisted surface at
// process start, and writes every mutation through before the new state is
// observable.
//
// Set and Clear are the only writers. The store serializes them internally,
// but it does not serialize overlapping authentication flows: among
// concurrent writers the last to complete wins, and preventing re-entrant
// submission is the caller's job.
type Store struct {
	storage kv.Store
	key     string
	codec   Codec

	mu      sync.RWMutex
	current *Session
	loading bool
	mutated bool
}

// NewStore creates a [Store] over the given persisted surface. storageKey
// defaults to [DefaultStorageKey], codec to [JSONCodec].
func NewStore(storage kv.Store, storageKey string, codec Codec) *Store {
	if storageKey == "" {
		storageKey = DefaultStorageKey
	}
	if codec == nil {
		codec = JSONCodec{}
	}

	return &Store{
		storage: storage,
		key:     storageKey,
		codec:   codec,
		loading: true,
	}
}

// RestoreOutcome reports what the one-shot restore found. It is
// informational: restore never fails outwardly, every outcome resolves to a
// session or to logged-out.
type RestoreOutcome uint8

const (
	// RestoreSettled means the restore had already completed before this call.
	RestoreSettled RestoreOutcome = iota
	// RestoreEmpty means nothing was persisted.
	RestoreEmpty
	// RestoreSession means a valid persisted session was loaded.
	RestoreSession
	// RestoreCorrupt means the persisted value failed to decode and was cleared.
	RestoreCorrupt
	// RestoreUnavailable means the persisted surface could not be read.
	RestoreUnavailable
)

// Restore reads the persisted surface once per process lifetime and settles
// the loading flag. A missing, unreadable, or corrupt entry yields "no
// session"; a corrupt entry is additionally cleared. Restore never fails
// outwardly, and calls after the first return the current session unchanged
// with [RestoreSettled].
func (s *Store) Restore(ctx context.Context) (*Session, RestoreOutcome) {
	s.mu.Lock()
	if !s.loading {
		defer s.mu.Unlock()
		return s.current.Clone(), RestoreSettled
	}
	s.mu.Unlock()

	// Suspension point: the read happens outside the lock so Set/Clear from a
	// competing flow are not blocked behind storage latency.
	var (
		restored *Session
		outcome  RestoreOutcome
	)
	data, err := s.storage.Get(ctx, s.key)
	switch {
	case err == nil:
		sess, decErr := s.codec.Decode(data)
		if decErr != nil {
			outcome = RestoreCorrupt
			// The cleanup happens even when the caller has already cancelled:
			// leaving the corrupt entry behind would re-trip every restart.
			if delErr := s.storage.Delete(context.WithoutCancel(ctx), s.key); delErr != nil {
				log.Print("clientcore: corrupt session record cleanup failed")
			}
		} else {
			restored = sess
			outcome = RestoreSession
		}
	case errors.Is(err, kv.ErrNotFound):
		// Nothing persisted: first run or prior logout.
		outcome = RestoreEmpty
	default:
		outcome = RestoreUnavailable
		log.Print("clientcore: session restore read failed")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loading {
		return s.current.Clone(), RestoreSettled
	}
	// A Set or Clear that completed while the read was in flight wins over
	// the restored value.
	if !s.mutated {
		s.current = restored
	}
	s.loading = false
	return s.current.Clone(), outcome
}

// Set replaces the current session. The persisted write completes before the
// new state becomes observable; on a storage failure the cell is left
// unchanged and the error is returned.
func (s *Store) Set(ctx context.Context, sess *Session) error {
	encoded, err := s.codec.Encode(sess)
	if err != nil {
		return err
	}
	if err := s.storage.Set(ctx, s.key, encoded); err != nil {
		return fmt.Errorf("session persist failed: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = sess.Clone()
	s.mutated = true
	return nil
}

// Clear removes the persisted entry and then the current session. Clearing
// an already-empty store is not an error. When the storage delete fails the
// cell is left unchanged, so callers never observe "logged out" while a
// persisted record survives to resurrect the session on the next restart.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.storage.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("session entry removal failed: %w", err)
	}

	s.mu.Lock()
	s.current = nil
	s.mutated = true
	s.mu.Unlock()
	return nil
}

// Current returns a copy of the current session, or nil when logged out.
func (s *Store) Current() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// Loading reports whether the one-shot restore has yet to complete. Callers
// must treat loading as a third state distinct from "logged out".
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}
