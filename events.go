package clientcore

import (
	"context"
	"io"
	"time"

	"github.com/hirewire/clientcore/internal/events"
)

const (
	eventLoginSuccess    = events.TypeLoginSuccess
	eventLoginFailure    = events.TypeLoginFailure
	eventRegisterSuccess = events.TypeRegisterSuccess
	eventRegisterFailure = events.TypeRegisterFailure
	eventLogout          = events.TypeLogout
	eventSessionRestored = events.TypeSessionRestored
	eventRestoreCorrupt  = events.TypeRestoreCorrupt
	eventRestoreEmpty    = events.TypeRestoreEmpty
)

// Event is a structured outcome record emitted by the engine.
type Event = events.Event

// Sink receives [Event] values from the engine's event dispatcher.
type Sink = events.Sink

// NoOpSink is a [Sink] that silently discards all events.
type NoOpSink = events.NoOpSink

// ChannelSink is a buffered channel-based [Sink].
type ChannelSink = events.ChannelSink

// JSONWriterSink is a [Sink] that writes JSON-encoded events to an
// [io.Writer], one object per line.
type JSONWriterSink = events.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return events.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return events.NewJSONWriterSink(w)
}

func (e *Engine) emitEvent(
	ctx context.Context,
	eventType string,
	success bool,
	email string,
	sessionID string,
	err error,
	metadataBuilder func() map[string]string,
) {
	if e == nil || e.events == nil {
		return
	}

	var metadata map[string]string
	if metadataBuilder != nil {
		metadata = metadataBuilder()
	}

	event := Event{
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		Email:     email,
		SessionID: sessionID,
		Success:   success,
		Metadata:  metadata,
	}
	if err != nil {
		event.Error = err.Error()
	}

	e.events.Emit(ctx, event)
}
