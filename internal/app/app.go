// Package app provides the core wallet service for Wails bindings.
// This struct focuses on orchestration; business rules live in the
// leaf packages.
package app

import (
	"context"
	"log/slog"
	"sync"

	"github.com/wailsapp/wails/v3/pkg/application"

	"github.com/r4mmer/hathor-wallet-core/clipboard"
	"github.com/r4mmer/hathor-wallet-core/config"
	"github.com/r4mmer/hathor-wallet-core/event"
	"github.com/r4mmer/hathor-wallet-core/feature"
	"github.com/r4mmer/hathor-wallet-core/fullnode"
	"github.com/r4mmer/hathor-wallet-core/network"
	"github.com/r4mmer/hathor-wallet-core/pin"
	"github.com/r4mmer/hathor-wallet-core/saga"
	"github.com/r4mmer/hathor-wallet-core/state"
	"github.com/r4mmer/hathor-wallet-core/storage"
	"github.com/r4mmer/hathor-wallet-core/tokens"
)

// Service provides wallet functionality bound to Wails. It owns the
// event bus and the long-running flow handlers.
type Service struct {
	cfg       *config.Config
	bus       *event.Bus
	state     *state.Store
	gate      *feature.Gate
	bridge    *pin.Bridge
	store     *storage.Store
	tokens    *tokens.RegistryStore
	presenter *modalPresenter

	// dial builds an engine for a node base URL. Tests swap it.
	dial func(baseURL string) Engine

	mu     sync.RWMutex
	net    network.Settings
	engine Engine

	// UI references - set via Init
	app    *application.App
	window application.Window

	ctx    context.Context
	cancel context.CancelFunc

	version string
}

// New creates a new Service. Call Init() after the Wails app is
// created, then Start().
func New(version string) *Service {
	return &Service{version: version}
}

// GetVersion returns the application version.
func (s *Service) GetVersion() string {
	return s.version
}

// LogLevel reports the configured log level. Valid after Init.
func (s *Service) LogLevel() slog.Level {
	return s.cfg.SlogLevel()
}

// Init initializes the service with app and window references.
// Must be called after the Wails application is created.
func (s *Service) Init(app *application.App, window application.Window) {
	s.app = app
	s.window = window

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		cfg = &config.Config{Network: network.Mainnet()}
	}
	s.cfg = cfg

	store, err := storage.New(cfg.DataDir)
	if err != nil {
		// A wallet without its database still has to come up; fall back
		// to an ephemeral store for the session.
		slog.Error("open storage, falling back to in-memory", "error", err)
		store, err = storage.NewInMemory()
		if err != nil {
			slog.Error("open in-memory storage", "error", err)
		}
	}
	s.store = store

	s.wire()
}

// wire assembles the bus, state, and flow components. Split from Init
// so tests can assemble a Service without a Wails application.
func (s *Service) wire() {
	s.bus = event.NewBus()
	s.state = state.New()
	s.gate = feature.NewGate(s.bus, s.state)
	s.presenter = newModalPresenter(s.emit, s.showWindow)
	s.bridge = pin.NewBridge(s.presenter, s.state)
	s.tokens = tokens.NewRegistryStore(s.store)
	if s.dial == nil {
		s.dial = func(baseURL string) Engine { return fullnode.New(baseURL) }
	}
}

// Start resolves the active network, launches the long-running flow
// handlers, and initializes the feature toggles. Handlers subscribe
// before any event is emitted, so commands dispatched right after
// Start cannot be missed.
func (s *Service) Start() {
	s.ctx, s.cancel = context.WithCancel(context.Background())

	persisted, err := network.LoadPersisted(s.store)
	if err != nil {
		slog.Error("load persisted network settings", "error", err)
	}
	s.setNetwork(network.Resolve(persisted, s.cfg.Network))

	saga.Go(s.ctx, s.bus, event.Match(nil, KindSendTx),
		saga.Supervise(s.bus, event.Event{Kind: KindSendTxFailed}, s.handleSendTx))
	saga.Go(s.ctx, s.bus, event.Match(nil, KindNetworkUpdate),
		saga.Supervise(s.bus, event.Event{Kind: KindNetworkUpdateFailed}, s.handleNetworkUpdate))
	s.startMirror()

	s.initToggles()
}

// Shutdown cleans up resources.
func (s *Service) Shutdown() {
	if s.cancel != nil {
		s.cancel()
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			slog.Error("close storage", "error", err)
		}
	}
}

// emit is a safe wrapper around app.Event.Emit
func (s *Service) emit(name string, data any) {
	if s.app != nil {
		s.app.Event.Emit(name, data)
	}
}

// showWindow raises the wallet window so a pending prompt is seen.
func (s *Service) showWindow() {
	if s.window != nil {
		s.window.Show()
		s.window.Focus()
	}
}

// startMirror forwards every bus event to the frontend.
func (s *Service) startMirror() {
	sub := s.bus.Subscribe(event.Match(nil))
	go func() {
		defer sub.Cancel()
		for {
			select {
			case evt, ok := <-sub.C:
				if !ok {
					return
				}
				s.emit(EventWallet, evt)
			case <-s.ctx.Done():
				return
			}
		}
	}()
}

func (s *Service) setNetwork(st network.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.net = st
	s.engine = s.dial(st.NodeURL)
}

func (s *Service) networkSettings() network.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.net
}

func (s *Service) currentEngine() Engine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine
}

// ─────────────────────────────────────────────────────────────────────────────
// Frontend surface
// ─────────────────────────────────────────────────────────────────────────────

// Status is the wallet snapshot bound for the frontend.
type Status struct {
	Version       string           `json:"version"`
	TogglesReady  bool             `json:"togglesReady"`
	Toggles       map[string]bool  `json:"toggles"`
	ModalVisible  bool             `json:"modalVisible"`
	Network       network.Settings `json:"network"`
	WalletService bool             `json:"walletServiceAvailable"`
}

// Status reports readiness, modal visibility, and the resolved network.
func (s *Service) Status() Status {
	st := s.networkSettings()
	return Status{
		Version:       s.version,
		TogglesReady:  s.state.TogglesReady(),
		Toggles:       s.state.Toggles(),
		ModalVisible:  s.state.ModalVisible(),
		Network:       st,
		WalletService: !st.WalletServiceUnavailable(),
	}
}

// FeatureEnabled blocks until the toggle set is initialized, then
// reports the flag value.
func (s *Service) FeatureEnabled(name string) (bool, error) {
	return s.gate.Enabled(s.ctx, name)
}

// SubmitPin resolves the pending secret-entry session.
func (s *Service) SubmitPin(sessionID, secret string) error {
	return s.presenter.Complete(sessionID, secret)
}

// CancelPin dismisses the pending secret-entry session.
func (s *Service) CancelPin(sessionID string) error {
	return s.presenter.Dismiss(sessionID)
}

// FormatAmount renders an integer token amount for display.
func (s *Service) FormatAmount(amount int64) string {
	return tokens.FormatAmount(amount)
}

// CopyToClipboard places an address or transaction hash on the system
// clipboard.
func (s *Service) CopyToClipboard(text string) error {
	return clipboard.SetText(s.app, text)
}

// ReadClipboard returns the clipboard text, for pasting a signed
// transaction.
func (s *Service) ReadClipboard() (string, error) {
	return clipboard.GetText(s.app)
}

// ─────────────────────────────────────────────────────────────────────────────
// Token Registry
// ─────────────────────────────────────────────────────────────────────────────

// RegisterToken adds a token to the registry.
func (s *Service) RegisterToken(uid, name, symbol string) error {
	if err := s.tokens.Register(tokens.Record{UID: uid, Name: name, Symbol: symbol}); err != nil {
		return err
	}
	s.emit(EventTokensUpdated, uid)
	return nil
}

// UnregisterToken removes a token from the registry.
func (s *Service) UnregisterToken(uid string) error {
	if err := s.tokens.Unregister(uid); err != nil {
		return err
	}
	s.emit(EventTokensUpdated, uid)
	return nil
}

// RegisteredTokens lists the registry, prepending the built-in tokens
// unless excludeNative is set.
func (s *Service) RegisteredTokens(excludeNative bool) ([]tokens.Record, error) {
	return tokens.ListRegistered(s.ctx, s.tokens.Registered(), excludeNative)
}

// IsTokenRegistered reports whether uid is a known token.
func (s *Service) IsTokenRegistered(uid string) (bool, error) {
	return tokens.IsRegistered(s.ctx, s.tokens.Registered(), uid)
}
