package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no value exists under the key.
var ErrNotFound = errors.New("kv: key not found")

// ErrUnavailable is an exported constant or variable used by the client session engine.
var ErrUnavailable = errors.New("kv: backend unavailable")

// Store defines a public type used by clientcore APIs.
//
// Implementations must be safe for concurrent use. Delete on a missing key is
// not an error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
