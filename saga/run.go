package saga

import (
	"context"

	"github.com/r4mmer/hathor-wallet-core/event"
)

// Run dispatches every event matching m to h, one at a time in emit
// order, until ctx ends.
func Run(ctx context.Context, bus *event.Bus, m event.Matcher, h Handler) {
	drain(ctx, bus.Subscribe(m), h)
}

// Go is Run on its own goroutine, except the subscription is registered
// before Go returns: events emitted afterwards are never missed.
func Go(ctx context.Context, bus *event.Bus, m event.Matcher, h Handler) {
	sub := bus.Subscribe(m)
	go drain(ctx, sub, h)
}

func drain(ctx context.Context, sub *event.Subscription, h Handler) {
	defer sub.Cancel()

	for {
		select {
		case evt, ok := <-sub.C:
			if !ok {
				return
			}
			h(ctx, evt)
		case <-ctx.Done():
			return
		}
	}
}
