package event

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// subscriberBuffer bounds a subscription's backlog. Emit never blocks;
// a full subscriber loses the event instead.
const subscriberBuffer = 64

// Bus is an in-process broadcast event stream. Every emitted event is
// offered to all currently registered waiters and subscriptions whose
// matcher accepts it. Events emitted before registration are never
// replayed.
type Bus struct {
	mu      sync.Mutex
	nextID  uint64
	waiters map[uint64]*Waiter
	subs    map[uint64]*Subscription
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{
		waiters: make(map[uint64]*Waiter),
		subs:    make(map[uint64]*Subscription),
	}
}

// Emit broadcasts evt. A matched one-shot waiter is removed in the same
// critical section that delivers to it, so it resumes at most once.
// Subscriptions receive on a bounded channel; on overflow the event is
// dropped with a warning.
func (b *Bus) Emit(evt Event) {
	if evt.ID == "" {
		evt.ID = uuid.NewString()
	}
	if evt.At.IsZero() {
		evt.At = time.Now()
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for id, w := range b.waiters {
		if w.match(evt) {
			delete(b.waiters, id)
			w.ch <- evt
		}
	}
	for _, s := range b.subs {
		if !s.match(evt) {
			continue
		}
		select {
		case s.ch <- evt:
		default:
			slog.Warn("event subscriber lagging, dropping event", "kind", evt.Kind, "id", evt.ID)
		}
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// One-shot waiters
// ─────────────────────────────────────────────────────────────────────────────

// Waiter is a registered one-shot wait. C yields the first matching
// event emitted after registration.
type Waiter struct {
	C <-chan Event

	bus   *Bus
	id    uint64
	match Matcher
	ch    chan Event
}

// Watch registers a one-shot waiter for m. The waiter is live before
// Watch returns, so events emitted afterwards cannot be missed. Callers
// that stop waiting must Cancel.
func (b *Bus) Watch(m Matcher) *Waiter {
	w := &Waiter{bus: b, match: m, ch: make(chan Event, 1)}
	w.C = w.ch

	b.mu.Lock()
	b.nextID++
	w.id = b.nextID
	b.waiters[w.id] = w
	b.mu.Unlock()
	return w
}

// Cancel deregisters the waiter. Safe to call more than once and after
// the waiter has already resumed.
func (w *Waiter) Cancel() {
	w.bus.mu.Lock()
	delete(w.bus.waiters, w.id)
	w.bus.mu.Unlock()
}

// Wait blocks until an event matching m is emitted or ctx ends. The
// waiter is deregistered on every return path.
func (b *Bus) Wait(ctx context.Context, m Matcher) (Event, error) {
	w := b.Watch(m)
	defer w.Cancel()

	select {
	case evt := <-w.C:
		return evt, nil
	case <-ctx.Done():
		return Event{}, ctx.Err()
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Persistent subscriptions
// ─────────────────────────────────────────────────────────────────────────────

// Subscription is a persistent feed of matching events in emit order.
type Subscription struct {
	C <-chan Event

	bus   *Bus
	id    uint64
	match Matcher
	ch    chan Event
}

// Subscribe registers a persistent subscription for m.
func (b *Bus) Subscribe(m Matcher) *Subscription {
	s := &Subscription{bus: b, match: m, ch: make(chan Event, subscriberBuffer)}
	s.C = s.ch

	b.mu.Lock()
	b.nextID++
	s.id = b.nextID
	b.subs[s.id] = s
	b.mu.Unlock()
	return s
}

// Cancel deregisters the subscription and closes C. Idempotent.
func (s *Subscription) Cancel() {
	s.bus.mu.Lock()
	defer s.bus.mu.Unlock()
	if _, ok := s.bus.subs[s.id]; !ok {
		return
	}
	delete(s.bus.subs, s.id)
	close(s.ch)
}
