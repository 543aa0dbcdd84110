package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/r4mmer/hathor-wallet-core/event"
	"github.com/r4mmer/hathor-wallet-core/feature"
	"github.com/r4mmer/hathor-wallet-core/network"
	"github.com/r4mmer/hathor-wallet-core/saga"
)

// ─────────────────────────────────────────────────────────────────────────────
// Toggle Initialization
// ─────────────────────────────────────────────────────────────────────────────

// composeToggles layers config overrides on the built-in defaults and
// applies the cascade for the currently resolved network.
func (s *Service) composeToggles() map[string]bool {
	toggles := make(map[string]bool, len(feature.Defaults))
	for name, on := range feature.Defaults {
		toggles[name] = on
	}
	for name, on := range s.cfg.Toggles {
		toggles[name] = on
	}
	return network.CascadeDisable(s.networkSettings(), toggles)
}

// initToggles installs the composed toggle set and marks readiness.
// Runs once per process; the initialization event is emitted only here.
func (s *Service) initToggles() {
	toggles := s.composeToggles()
	s.state.SetToggles(toggles)
	s.state.MarkTogglesReady()
	s.bus.Emit(event.New(feature.KindToggleInitialized, nil))
	s.emit(EventTogglesUpdated, toggles)
	slog.Info("feature toggles initialized", "count", len(toggles))
}

// SetFeatureToggle persists a local toggle override and applies it to
// the live set. The network cascade still has the last word.
func (s *Service) SetFeatureToggle(name string, on bool) error {
	if err := s.cfg.SetToggle(name, on); err != nil {
		return fmt.Errorf("persist toggle: %w", err)
	}
	s.state.SetToggles(s.composeToggles())
	s.emit(EventTogglesUpdated, s.state.Toggles())
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Send Transaction
// ─────────────────────────────────────────────────────────────────────────────

// SendTransaction asks for the spending PIN, then runs the signed
// transaction through the send flow and waits for its outcome. It
// returns the transaction hash accepted by the node.
func (s *Service) SendTransaction(hexTx string) (string, error) {
	hexTx = strings.TrimSpace(hexTx)
	if hexTx == "" {
		return "", fmt.Errorf("empty transaction")
	}

	// The secret authorizes the spend; custody and signing live behind
	// the engine.
	if _, err := s.bridge.Request(s.ctx, "Enter your PIN to send", "Unlock with biometrics", true); err != nil {
		return "", fmt.Errorf("pin entry: %w", err)
	}

	id := uuid.NewString()
	out, err := saga.DispatchAndWait(s.ctx, s.bus,
		event.New(KindSendTx, map[string]any{"id": id, "hexTx": hexTx}),
		event.Match(map[string]any{"id": id}, KindSendTxSuccess),
		event.Match(nil, KindSendTxFailed),
	)
	if err != nil {
		return "", fmt.Errorf("send transaction: %w", err)
	}
	if out.Result == saga.Failure {
		return "", fmt.Errorf("send transaction failed")
	}
	hash, _ := out.Event.Payload["hash"].(string)
	return hash, nil
}

// handleSendTx submits the transaction to the node and reports the
// outcome on the bus. Runs under the send-flow supervisor.
func (s *Service) handleSendTx(ctx context.Context, evt event.Event) error {
	hexTx, _ := evt.Payload["hexTx"].(string)
	if hexTx == "" {
		return fmt.Errorf("send command carried no transaction")
	}

	hash, err := s.currentEngine().PushTx(ctx, hexTx)
	if err != nil {
		return fmt.Errorf("push tx: %w", err)
	}

	slog.Info("transaction accepted", "hash", hash)
	s.bus.Emit(event.New(KindSendTxSuccess, map[string]any{
		"id":   evt.Payload["id"],
		"hash": hash,
	}))
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Network Settings Update
// ─────────────────────────────────────────────────────────────────────────────

// UpdateNetworkSettings verifies the candidate endpoints and, on
// agreement, persists and applies them. The verified network id
// overrides whatever the candidate claimed.
func (s *Service) UpdateNetworkSettings(candidate network.Settings) error {
	id := uuid.NewString()
	out, err := saga.DispatchAndWait(s.ctx, s.bus,
		event.New(KindNetworkUpdate, map[string]any{"id": id, "settings": candidate}),
		event.Match(map[string]any{"id": id}, KindNetworkUpdateSuccess),
		event.Match(nil, KindNetworkUpdateFailed),
	)
	if err != nil {
		return fmt.Errorf("update network settings: %w", err)
	}
	if out.Result == saga.Failure {
		return fmt.Errorf("network settings rejected")
	}
	return nil
}

// handleNetworkUpdate probes the candidate endpoints, persists the
// settings on agreement, and swaps the live network. Runs under the
// settings-flow supervisor.
func (s *Service) handleNetworkUpdate(ctx context.Context, evt event.Event) error {
	candidate, ok := evt.Payload["settings"].(network.Settings)
	if !ok {
		return fmt.Errorf("update command carried no settings")
	}
	candidate.Network = strings.TrimSpace(candidate.Network)
	candidate.NodeURL = strings.TrimSpace(candidate.NodeURL)
	candidate.ExplorerURL = strings.TrimSpace(candidate.ExplorerURL)
	candidate.WalletServiceURL = strings.TrimSpace(candidate.WalletServiceURL)
	candidate.WalletServiceWSURL = strings.TrimSpace(candidate.WalletServiceWSURL)
	if candidate.NodeURL == "" {
		return fmt.Errorf("node url required")
	}

	node := s.dial(candidate.NodeURL)
	var walletService network.NodeAPI
	if !candidate.WalletServiceUnavailable() {
		walletService = network.NewWalletServiceClient(candidate.WalletServiceURL)
	}

	netID, err := network.Verify(ctx, node, walletService)
	if err != nil {
		return fmt.Errorf("verify candidate network: %w", err)
	}
	candidate.Network = netID

	if err := network.SavePersisted(s.store, candidate); err != nil {
		return fmt.Errorf("persist network settings: %w", err)
	}

	s.mu.Lock()
	s.net = candidate
	s.engine = node
	s.mu.Unlock()

	s.state.SetToggles(network.CascadeDisable(candidate, s.state.Toggles()))

	s.bus.Emit(event.New(KindNetworkUpdateSuccess, map[string]any{
		"id":      evt.Payload["id"],
		"network": netID,
	}))
	s.emit(EventNetworkUpdated, candidate)
	s.emit(EventTogglesUpdated, s.state.Toggles())
	slog.Info("network settings updated", "network", netID, "node", candidate.NodeURL)
	return nil
}

// ResetNetworkSettings drops the custom settings document and returns
// the wallet to the configured presets, recomposing the toggle set. No
// probing: the presets are trusted.
func (s *Service) ResetNetworkSettings() error {
	if err := network.ClearPersisted(s.store); err != nil {
		return fmt.Errorf("clear network settings: %w", err)
	}
	s.setNetwork(s.cfg.Network)
	s.state.SetToggles(s.composeToggles())

	s.emit(EventNetworkUpdated, s.networkSettings())
	s.emit(EventTogglesUpdated, s.state.Toggles())
	slog.Info("network settings reset", "network", s.cfg.Network.Network)
	return nil
}
