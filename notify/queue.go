package notify

import (
	"sync"
	"time"
)

const (
	// DefaultCapacity is an exported constant or variable used by the client session engine.
	DefaultCapacity = 10
	// DefaultRemoveDelay matches the removal grace the reference client shipped
	// with: dismissed items linger far longer than any on-screen animation.
	DefaultRemoveDelay = 1000000 * time.Millisecond
)

// Config defines a public type used by clientcore APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	// Capacity bounds the queue; zero or negative selects DefaultCapacity.
	Capacity int
	// RemoveDelay is how long a dismissed item survives before physical
	// removal; zero selects DefaultRemoveDelay, negative removes immediately
	// on dismiss.
	RemoveDelay time.Duration
}

// Stats is a point-in-time copy of the queue's counters.
type Stats struct {
	Enqueued  uint64
	Dismissed uint64
	Removed   uint64
	Evicted   uint64
	Expired   uint64
	Dropped   uint64
}

// Queue is a bounded most-recent-first collection of [Item] values with
// deferred removal of dismissed items. All methods are safe for concurrent
// use; operations that overlap resolve in completion order.
type Queue struct {
	capacity    int
	removeDelay time.Duration

	mu      sync.Mutex
	nextID  uint64
	items   []*Item
	timers  map[uint64]*time.Timer
	subs    map[uint64]*Subscriber
	nextSub uint64
	closed  bool
	stats   Stats
}

// NewQueue describes the newqueue operation and its observable behavior.
func NewQueue(cfg Config) *Queue {
	capacity := cfg.Capacity
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	removeDelay := cfg.RemoveDelay
	if removeDelay == 0 {
		removeDelay = DefaultRemoveDelay
	}

	return &Queue{
		capacity:    capacity,
		removeDelay: removeDelay,
		timers:      make(map[uint64]*time.Timer),
		subs:        make(map[uint64]*Subscriber),
	}
}

// Enqueue prepends a visible item carrying payload, evicting the oldest
// items when the queue would exceed its capacity, and returns a [Handle]
// bound to the new item.
func (q *Queue) Enqueue(payload Payload) *Handle {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return &Handle{}
	}

	if payload.Severity == SeverityUnspecified {
		payload.Severity = SeverityInfo
	}

	q.nextID++
	item := &Item{
		ID:        q.nextID,
		Payload:   payload,
		Visible:   true,
		CreatedAt: time.Now(),
	}

	q.items = append([]*Item{item}, q.items...)
	for len(q.items) > q.capacity {
		last := q.items[len(q.items)-1]
		q.items = q.items[:len(q.items)-1]
		q.cancelTimerLocked(last.ID)
		q.stats.Evicted++
	}

	q.stats.Enqueued++
	q.publishLocked()

	return &Handle{ID: item.ID, queue: q}
}

// Dismiss hides the item with the given id without removing it, and
// schedules its deferred removal unless one is already pending. Dismissing a
// hidden or absent item changes nothing.
func (q *Queue) Dismiss(id uint64) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	item := q.findLocked(id)
	if item == nil {
		return
	}

	changed := item.Visible
	item.Visible = false

	if _, pending := q.timers[id]; !pending {
		if q.removeDelay < 0 {
			q.removeLocked(id)
			q.stats.Removed++
		} else {
			q.timers[id] = time.AfterFunc(q.removeDelay, func() { q.expire(id) })
		}
	}

	if changed {
		q.stats.Dismissed++
		q.publishLocked()
	}
}

// Update merges payload into the item with the given id. Once the item has
// been removed the update is a silent no-op. Updates never reorder the queue.
func (q *Queue) Update(id uint64, payload Payload) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	item := q.findLocked(id)
	if item == nil {
		return
	}

	item.Payload = payload.merge(item.Payload)
	q.publishLocked()
}

// Remove deletes the item with the given id immediately, visible or not,
// cancelling any pending removal timer. Removing an absent id is a no-op.
func (q *Queue) Remove(id uint64) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	if q.removeLocked(id) {
		q.stats.Removed++
		q.publishLocked()
	}
}

// RemoveAll clears the whole collection and cancels every pending timer.
func (q *Queue) RemoveAll() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed || len(q.items) == 0 {
		return
	}

	for _, item := range q.items {
		q.cancelTimerLocked(item.ID)
		q.stats.Removed++
	}
	q.items = nil
	q.publishLocked()
}

// expire is the deferred-removal path. The timer may race an eviction or an
// explicit remove; by the time it fires the id may be gone, which is fine.
func (q *Queue) expire(id uint64) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	delete(q.timers, id)
	if q.removeItemLocked(id) {
		q.stats.Expired++
		q.publishLocked()
	}
}

// Items returns a snapshot of the whole collection, most recent first.
func (q *Queue) Items() []Item {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.snapshotLocked(false)
}

// VisibleItems returns a snapshot of the items a renderer should show,
// most recent first.
func (q *Queue) VisibleItems() []Item {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.snapshotLocked(true)
}

// Len describes the len operation and its observable behavior.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Stats describes the stats operation and its observable behavior.
func (q *Queue) Stats() Stats {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.stats
}

// Close cancels all timers, detaches all subscribers, and makes every
// subsequent operation a no-op.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true

	for id, timer := range q.timers {
		timer.Stop()
		delete(q.timers, id)
	}
	for id, sub := range q.subs {
		close(sub.ch)
		delete(q.subs, id)
	}
}

func (q *Queue) findLocked(id uint64) *Item {
	for _, item := range q.items {
		if item.ID == id {
			return item
		}
	}
	return nil
}

func (q *Queue) removeLocked(id uint64) bool {
	q.cancelTimerLocked(id)
	return q.removeItemLocked(id)
}

func (q *Queue) removeItemLocked(id uint64) bool {
	for i, item := range q.items {
		if item.ID == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return true
		}
	}
	return false
}

func (q *Queue) cancelTimerLocked(id uint64) {
	if timer, ok := q.timers[id]; ok {
		timer.Stop()
		delete(q.timers, id)
	}
}

func (q *Queue) snapshotLocked(visibleOnly bool) []Item {
	out := make([]Item, 0, len(q.items))
	for _, item := range q.items {
		if visibleOnly && !item.Visible {
			continue
		}
		out = append(out, *item)
	}
	return out
}
