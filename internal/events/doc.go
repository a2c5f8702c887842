// Package events carries the outcome event model and the buffered dispatcher
// shared between the root package and the notification bridge.
package events
