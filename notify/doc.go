// Package notify is a bounded, ordered queue of transient UI messages with
// per-item soft delete and timer-driven physical removal.
//
// Items are exposed most-recent-first and the queue never holds more than its
// capacity; overflow evicts from the tail. Dismissing an item hides it and
// schedules its removal after a fixed delay, with the timer keyed by item id
// and cancelled when the item is removed by any other path first. Any
// component may produce into the queue; a renderer observes it through
// [Queue.Subscribe].
package notify
