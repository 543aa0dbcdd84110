package feature

import (
	"context"

	"github.com/r4mmer/hathor-wallet-core/event"
	"github.com/r4mmer/hathor-wallet-core/state"
)

// Gate answers toggle queries, blocking callers until the toggle set
// has been initialized.
type Gate struct {
	bus   *event.Bus
	store *state.Store
}

// NewGate creates a gate over the given bus and state store.
func NewGate(bus *event.Bus, store *state.Store) *Gate {
	return &Gate{bus: bus, store: store}
}

// Enabled reports whether flag is on. If initialization has not
// completed yet it waits for the initialization event first, then reads
// the stored value, falling back to Defaults and finally to false.
func (g *Gate) Enabled(ctx context.Context, flag string) (bool, error) {
	// Register before checking readiness so a signal landing between
	// the two steps cannot be missed.
	w := g.bus.Watch(event.Match(nil, KindToggleInitialized))
	defer w.Cancel()

	if !g.store.TogglesReady() {
		select {
		case <-w.C:
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}

	if v, ok := g.store.Toggle(flag); ok {
		return v, nil
	}
	if v, ok := Defaults[flag]; ok {
		return v, nil
	}
	return false, nil
}
