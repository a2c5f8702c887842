package notify

import (
	"context"

	"github.com/hirewire/clientcore/internal/events"
)

// EventSink adapts a [Queue] into an engine event sink so authentication
// outcomes surface as notifications. Session restore events pass through
// silently; restoring is not something the user acted on.
type EventSink struct {
	queue *Queue
}

// NewEventSink describes the neweventsink operation and its observable behavior.
func NewEventSink(queue *Queue) *EventSink {
	return &EventSink{queue: queue}
}

// Emit describes the emit operation and its observable behavior.
func (s *EventSink) Emit(ctx context.Context, event events.Event) {
	if s == nil || s.queue == nil {
		return
	}

	var payload Payload
	switch event.EventType {
	case events.TypeLoginSuccess:
		payload = Payload{Title: "Login successful!", Severity: SeveritySuccess}
	case events.TypeLoginFailure:
		payload = Payload{
			Title:       "Login failed",
			Description: "Please check your credentials.",
			Severity:    SeverityError,
		}
	case events.TypeRegisterSuccess:
		payload = Payload{Title: "Registration successful!", Severity: SeveritySuccess}
	case events.TypeRegisterFailure:
		payload = Payload{
			Title:       "Registration failed",
			Description: "Please try again.",
			Severity:    SeverityError,
		}
	case events.TypeLogout:
		payload = Payload{Title: "You've been logged out successfully.", Severity: SeverityInfo}
	default:
		return
	}

	s.queue.Enqueue(payload)
}
