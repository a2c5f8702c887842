package notify

import "time"

// Severity defines a public type used by clientcore APIs.
//
// Severity instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Severity uint8

const (
	// SeverityUnspecified is an exported constant or variable used by the client session engine.
	SeverityUnspecified Severity = iota
	// SeverityInfo is an exported constant or variable used by the client session engine.
	SeverityInfo
	// SeveritySuccess is an exported constant or variable used by the client session engine.
	SeveritySuccess
	// SeverityError is an exported constant or variable used by the client session engine.
	SeverityError
)

// String describes the string operation and its observable behavior.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeveritySuccess:
		return "success"
	case SeverityError:
		return "error"
	default:
		return "unspecified"
	}
}

// Payload is the display content of a notification. The queue treats it as
// opaque: it is stored, merged on update, and handed back to observers.
type Payload struct {
	Title       string
	Description string
	Severity    Severity
}

// merge overlays the fields p carries onto base, leaving unset fields alone.
func (p Payload) merge(base Payload) Payload {
	out := base
	if p.Title != "" {
		out.Title = p.Title
	}
	if p.Description != "" {
		out.Description = p.Description
	}
	if p.Severity != SeverityUnspecified {
		out.Severity = p.Severity
	}
	return out
}

// Item is one queued notification. ID is assigned monotonically at insertion
// and never reused. Visible starts true and can only flip to false.
type Item struct {
	ID        uint64
	Payload   Payload
	Visible   bool
	CreatedAt time.Time
}

// Handle is returned by [Queue.Enqueue]. Its operations are bound to the
// enqueued item and become silent no-ops once the item is gone.
type Handle struct {
	ID uint64

	queue *Queue
}

// Dismiss hides the bound item, see [Queue.Dismiss].
func (h *Handle) Dismiss() {
	if h == nil || h.queue == nil {
		return
	}
	h.queue.Dismiss(h.ID)
}

// Update merges payload into the bound item, see [Queue.Update].
func (h *Handle) Update(payload Payload) {
	if h == nil || h.queue == nil {
		return
	}
	h.queue.Update(h.ID, payload)
}
