package clientcore

import (
	"errors"
	"time"

	"github.com/hirewire/clientcore/notify"
)

// Config defines a public type used by clientcore APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Session       SessionConfig
	Notifications NotificationConfig
	Events        EventConfig
	Metrics       MetricsConfig
}

/*
====================================
SESSION CONFIG
====================================
*/

// SessionEncoding selects how the persisted session record is serialized.
type SessionEncoding string

const (
	// EncodingJSON is an exported constant or variable used by the client session engine.
	EncodingJSON SessionEncoding = "json"
	// EncodingSigned is an exported constant or variable used by the client session engine.
	EncodingSigned SessionEncoding = "signed"
)

// SessionConfig defines a public type used by clientcore APIs.
//
// SessionConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SessionConfig struct {
	// StorageKey is the fixed key the persisted record lives under.
	// Empty selects session.DefaultStorageKey.
	StorageKey string
	// Encoding is "json" (default) or "signed".
	Encoding SessionEncoding
	// SigningKey is the HMAC key for the signed encoding; required when
	// Encoding is "signed", ignored otherwise.
	SigningKey []byte
}

/*
====================================
NOTIFICATION CONFIG
====================================
*/

// NotificationConfig defines a public type used by clientcore APIs.
//
// NotificationConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type NotificationConfig struct {
	// SurfaceOutcomes enqueues a notification per authentication outcome.
	// The target is the queue wired via Builder.WithNotifications; without
	// one, Build constructs an engine-owned queue from the fields below.
	SurfaceOutcomes bool
	// Capacity and RemoveDelay shape the queue Build constructs; they are
	// ignored when a caller-owned queue is supplied.
	Capacity    int
	RemoveDelay time.Duration
}

// EventConfig defines a public type used by clientcore APIs.
//
// EventConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type EventConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig defines a public type used by clientcore APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled bool
}

func defaultConfig() Config {
	return Config{
		Session: SessionConfig{
			Encoding: EncodingJSON,
		},
		Notifications: NotificationConfig{
			SurfaceOutcomes: true,
			Capacity:        notify.DefaultCapacity,
			RemoveDelay:     notify.DefaultRemoveDelay,
		},
		Events: EventConfig{
			Enabled:    true,
			BufferSize: 64,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.Session.SigningKey = cloneBytes(cfg.Session.SigningKey)
	return out
}

func cloneBytes(in []byte) []byte {
	if in == nil {
		return nil
	}
	out := make([]byte, len(in))
	copy(out, in)
	return out
}

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c Config) Validate() error {
	switch c.Session.Encoding {
	case EncodingJSON, "":
	case EncodingSigned:
		if len(c.Session.SigningKey) == 0 {
			return errors.New("signed session encoding requires SigningKey")
		}
	default:
		return errors.New("unknown session encoding: " + string(c.Session.Encoding))
	}

	if c.Notifications.Capacity < 0 {
		return errors.New("notification capacity must not be negative")
	}
	if c.Events.Enabled && c.Events.BufferSize < 0 {
		return errors.New("event buffer size must not be negative")
	}

	return nil
}
