package saga

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/r4mmer/hathor-wallet-core/event"
)

// Routine is a flow body. A returned error is a fault.
type Routine func(context.Context, event.Event) error

// Handler is a supervised flow entry point; faults never escape it.
type Handler func(context.Context, event.Event)

// Supervise wraps fn so that any fault, returned or panicked, is logged
// once together with the triggering event's kind and converted into a
// single emission of failure. Normal completion emits nothing.
func Supervise(bus *event.Bus, failure event.Event, fn Routine) Handler {
	return func(ctx context.Context, evt event.Event) {
		err := runSafe(ctx, fn, evt)
		if err == nil {
			return
		}
		slog.Error("wallet flow failed", "kind", evt.Kind, "error", err)
		bus.Emit(failure)
	}
}

func runSafe(ctx context.Context, fn Routine, evt event.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn(ctx, evt)
}
