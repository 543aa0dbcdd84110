// Package pin turns the callback-driven PIN entry modal into a blocking
// call for wallet flows that need the user's secret mid-flight.
package pin

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/r4mmer/hathor-wallet-core/state"
)

// Screen identifies the secret-entry modal to the presentation layer.
const Screen = "pin"

// ErrCanceled is returned when the user dismisses the modal instead of
// entering a secret.
var ErrCanceled = errors.New("pin entry canceled")

// Request describes one secret-entry session handed to the presenter.
type Request struct {
	Screen      string `json:"screen"`
	SessionID   string `json:"sessionId"`
	Prompt      string `json:"prompt"`
	AltPrompt   string `json:"altPrompt,omitempty"`
	AllowCancel bool   `json:"allowCancel"`

	// OnComplete is invoked by the presentation layer with the entered
	// secret. OnCancel is invoked when the user dismisses the modal.
	// Whichever runs first wins; extra invocations of either are
	// ignored.
	OnComplete func(secret string) `json:"-"`
	OnCancel   func()              `json:"-"`
}

// Presenter shows the secret-entry modal. Present must not block;
// completion arrives later through Request.OnComplete. A presenter that
// dismisses the modal without ever completing leaves the session
// suspended, which is the presentation layer's contract to uphold.
type Presenter interface {
	Present(req Request)
}

// Bridge owns the shared modal-visible flag and serializes secret
// requests, one modal at a time.
type Bridge struct {
	presenter Presenter
	store     *state.Store
	sess      chan struct{}
}

// NewBridge creates a bridge over the given presenter and state store.
func NewBridge(presenter Presenter, store *state.Store) *Bridge {
	return &Bridge{
		presenter: presenter,
		store:     store,
		sess:      make(chan struct{}, 1),
	}
}

// Request shows the modal and blocks until the user completes or
// dismisses it. The modal-visible flag is raised for the session and
// cleared exactly once, inside the completion callback, before this
// call returns. Dismissal surfaces as ErrCanceled. There is no internal
// time bound; cancel ctx to give up waiting.
func (b *Bridge) Request(ctx context.Context, prompt, altPrompt string, allowCancel bool) (string, error) {
	select {
	case b.sess <- struct{}{}:
		defer func() { <-b.sess }()
	case <-ctx.Done():
		return "", ctx.Err()
	}

	type outcome struct {
		secret string
		err    error
	}
	done := make(chan outcome, 1)
	var once sync.Once

	b.store.SetModalVisible(true)
	b.presenter.Present(Request{
		Screen:      Screen,
		SessionID:   uuid.NewString(),
		Prompt:      prompt,
		AltPrompt:   altPrompt,
		AllowCancel: allowCancel,
		OnComplete: func(secret string) {
			once.Do(func() {
				b.store.SetModalVisible(false)
				done <- outcome{secret: secret}
			})
		},
		OnCancel: func() {
			once.Do(func() {
				b.store.SetModalVisible(false)
				done <- outcome{err: ErrCanceled}
			})
		},
	})

	select {
	case out := <-done:
		return out.secret, out.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
