package app

import (
	"fmt"
	"sync"

	"github.com/r4mmer/hathor-wallet-core/pin"
)

// modalPresenter forwards secret-entry requests over the Wails event
// bridge and holds the pending callbacks until the frontend answers
// through the bound SubmitPin / CancelPin methods.
type modalPresenter struct {
	emit func(name string, data any)
	show func()

	mu      sync.Mutex
	pending map[string]pin.Request
}

func newModalPresenter(emit func(name string, data any), show func()) *modalPresenter {
	return &modalPresenter{
		emit:    emit,
		show:    show,
		pending: make(map[string]pin.Request),
	}
}

// Present implements pin.Presenter. The window is raised first so the
// prompt is not waiting behind other applications.
func (p *modalPresenter) Present(req pin.Request) {
	p.mu.Lock()
	p.pending[req.SessionID] = req
	p.mu.Unlock()
	if p.show != nil {
		p.show()
	}
	p.emit(EventPinRequest, req)
}

// Complete resolves a pending session with the entered secret.
func (p *modalPresenter) Complete(sessionID, secret string) error {
	req, ok := p.take(sessionID)
	if !ok {
		return fmt.Errorf("unknown pin session: %s", sessionID)
	}
	req.OnComplete(secret)
	return nil
}

// Dismiss cancels a pending session.
func (p *modalPresenter) Dismiss(sessionID string) error {
	req, ok := p.take(sessionID)
	if !ok {
		return fmt.Errorf("unknown pin session: %s", sessionID)
	}
	if req.OnCancel != nil {
		req.OnCancel()
	}
	return nil
}

func (p *modalPresenter) take(sessionID string) (pin.Request, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	req, ok := p.pending[sessionID]
	if ok {
		delete(p.pending, sessionID)
	}
	return req, ok
}
