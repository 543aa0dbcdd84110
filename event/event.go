// Package event provides the in-process event stream that wallet flows
// coordinate over: a value Event type, predicate matchers, and a broadcast
// Bus with one-shot waiters and persistent subscriptions.
package event

import (
	"time"
)

// Event is an immutable value emitted on the Bus. Kind identifies the
// event family and Payload carries structured data. ID and At are
// bookkeeping assigned at emit time; matching never consults them.
type Event struct {
	ID      string         `json:"id"`
	Kind    string         `json:"kind"`
	Payload map[string]any `json:"payload,omitempty"`
	At      time.Time      `json:"at"`
}

// New creates an event with the given kind and payload. ID and At are
// filled in by Bus.Emit.
func New(kind string, payload map[string]any) Event {
	return Event{Kind: kind, Payload: payload}
}
