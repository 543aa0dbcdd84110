// Package state holds the process-wide mutable flags shared by wallet
// coordination flows. Each field has a single designated writer; one
// RWMutex covers them all because readers typically need a consistent
// view of toggles together with readiness.
package state

import "sync"

// Store is the owned shared state passed by reference to every flow
// that needs it.
type Store struct {
	mu sync.RWMutex

	togglesReady bool
	toggles      map[string]bool
	modalVisible bool
}

// New creates an empty store: toggles unset, not ready, no modal.
func New() *Store {
	return &Store{toggles: make(map[string]bool)}
}

// SetToggles replaces the toggle set. Written only by the toggle
// initialization flow.
func (s *Store) SetToggles(toggles map[string]bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toggles = make(map[string]bool, len(toggles))
	for k, v := range toggles {
		s.toggles[k] = v
	}
}

// Toggle returns the stored value for name and whether it is present.
func (s *Store) Toggle(name string) (bool, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.toggles[name]
	return v, ok
}

// Toggles returns a copy of the current toggle set.
func (s *Store) Toggles() map[string]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]bool, len(s.toggles))
	for k, v := range s.toggles {
		out[k] = v
	}
	return out
}

// MarkTogglesReady sets the readiness flag. Monotonic: there is no way
// to unset it.
func (s *Store) MarkTogglesReady() {
	s.mu.Lock()
	s.togglesReady = true
	s.mu.Unlock()
}

// TogglesReady reports whether toggle initialization has completed.
func (s *Store) TogglesReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.togglesReady
}

// SetModalVisible records whether the secret-entry modal is on screen.
// Written only by the pin bridge.
func (s *Store) SetModalVisible(v bool) {
	s.mu.Lock()
	s.modalVisible = v
	s.mu.Unlock()
}

// ModalVisible reports whether the secret-entry modal is on screen.
func (s *Store) ModalVisible() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modalVisible
}
