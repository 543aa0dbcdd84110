// Package saga coordinates multi-step wallet flows over the event bus:
// dispatching a command and racing its outcome events, supervising flow
// handlers so faults become compensating events, and running handler
// loops.
package saga

import (
	"context"

	"github.com/r4mmer/hathor-wallet-core/event"
)

// Result tags which side of a race resolved.
type Result int

const (
	Success Result = iota
	Failure
)

func (r Result) String() string {
	if r == Success {
		return "success"
	}
	return "failure"
}

// Outcome is the resolution of a dispatched command: which side won and
// the event that resolved it.
type Outcome struct {
	Result Result
	Event  event.Event
}

// DispatchAndWait emits command and blocks until an event matches
// success or failure, whichever is emitted first. The watcher is
// registered before the command goes out, so an outcome fired by a
// handler that runs immediately is never missed. A single one-shot
// watcher covers both sides, which makes resolution follow emit order
// and guarantees exactly one outcome; later outcome events fall on the
// floor. An event satisfying both matchers resolves as Success, so
// callers should keep the two predicates disjoint.
func DispatchAndWait(ctx context.Context, bus *event.Bus, command event.Event, success, failure event.Matcher) (Outcome, error) {
	w := bus.Watch(func(evt event.Event) bool {
		return success(evt) || failure(evt)
	})
	defer w.Cancel()

	bus.Emit(command)

	select {
	case evt := <-w.C:
		if success(evt) {
			return Outcome{Result: Success, Event: evt}, nil
		}
		return Outcome{Result: Failure, Event: evt}, nil
	case <-ctx.Done():
		return Outcome{}, ctx.Err()
	}
}
