package clientcore

import (
	"context"
	"errors"

	"github.com/hirewire/clientcore/internal/events"
	"github.com/hirewire/clientcore/kv"
	"github.com/hirewire/clientcore/notify"
	"github.com/hirewire/clientcore/session"
)

// Builder defines a public type used by clientcore APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config

	storage  kv.Store
	verifier Verifier
	sink     Sink
	queue    *notify.Queue

	built bool
}

// New describes the new operation and its observable behavior.
//
// New may return an error when input validation, dependency calls, or security checks fail.
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
//
// WithConfig may return an error when input validation, dependency calls, or security checks fail.
// WithConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithStorage wires the persisted key-value surface the session record lives
// on. When omitted, an in-process store is used and sessions do not survive
// a restart.
func (b *Builder) WithStorage(storage kv.Store) *Builder {
	b.storage = storage
	return b
}

// WithVerifier describes the withverifier operation and its observable behavior.
//
// WithVerifier may return an error when input validation, dependency calls, or security checks fail.
// WithVerifier does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithVerifier(v Verifier) *Builder {
	b.verifier = v
	return b
}

// WithEventSink describes the witheventsink operation and its observable behavior.
//
// WithEventSink may return an error when input validation, dependency calls, or security checks fail.
// WithEventSink does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithEventSink(sink Sink) *Builder {
	b.sink = sink
	return b
}

// WithNotifications wires a caller-owned notification queue. When
// Config.Notifications.SurfaceOutcomes is set, authentication outcomes are
// enqueued into it alongside any sink from WithEventSink. A queue supplied
// here is never closed by Engine.Close, and the Capacity/RemoveDelay fields
// of the notification config do not apply to it; without one, Build
// constructs a queue from those fields and the engine owns its lifecycle.
func (b *Builder) WithNotifications(queue *notify.Queue) *Builder {
	b.queue = queue
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
//
// WithMetricsEnabled may return an error when input validation, dependency calls, or security checks fail.
// WithMetricsEnabled does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
// Build does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if b.verifier == nil {
		return nil, errors.New("credential verifier required")
	}

	storage := b.storage
	if storage == nil {
		storage = kv.NewMemory()
	}

	// -------- SESSION STORE --------
	var codec session.Codec
	switch cfg.Session.Encoding {
	case EncodingSigned:
		signed, err := session.NewSignedCodec(cfg.Session.SigningKey)
		if err != nil {
			return nil, err
		}
		codec = signed
	default:
		codec = session.JSONCodec{}
	}

	store := session.NewStore(storage, cfg.Session.StorageKey, codec)

	// -------- NOTIFICATIONS --------
	queue := b.queue
	ownsQueue := false
	if queue == nil && cfg.Notifications.SurfaceOutcomes {
		queue = notify.NewQueue(notify.Config{
			Capacity:    cfg.Notifications.Capacity,
			RemoveDelay: cfg.Notifications.RemoveDelay,
		})
		ownsQueue = true
	}

	// -------- EVENT DISPATCH --------
	var sinks fanoutSink
	if b.sink != nil {
		sinks = append(sinks, b.sink)
	}
	if cfg.Notifications.SurfaceOutcomes && queue != nil {
		sinks = append(sinks, notify.NewEventSink(queue))
	}

	var sink Sink
	switch len(sinks) {
	case 0:
		sink = nil
	case 1:
		sink = sinks[0]
	default:
		sink = sinks
	}

	engine := &Engine{
		config:        cfg,
		sessions:      store,
		verifier:      b.verifier,
		notifications: queue,
		ownsQueue:     ownsQueue,
	}
	engine.events = events.NewDispatcher(events.Config{
		Enabled:    cfg.Events.Enabled,
		BufferSize: cfg.Events.BufferSize,
		DropIfFull: cfg.Events.DropIfFull,
	}, sink)
	engine.metrics = NewMetrics(cfg.Metrics)

	b.built = true

	return engine, nil
}

type fanoutSink []Sink

func (s fanoutSink) Emit(ctx context.Context, event Event) {
	for _, sink := range s {
		sink.Emit(ctx, event)
	}
}
