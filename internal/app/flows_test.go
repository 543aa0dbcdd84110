package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/r4mmer/hathor-wallet-core/config"
	"github.com/r4mmer/hathor-wallet-core/event"
	"github.com/r4mmer/hathor-wallet-core/feature"
	"github.com/r4mmer/hathor-wallet-core/network"
	"github.com/r4mmer/hathor-wallet-core/pin"
	"github.com/r4mmer/hathor-wallet-core/storage"
)

// mockEngine implements Engine for testing.
type mockEngine struct {
	hash    string
	pushErr error
	version network.VersionData
	verErr  error

	mu     sync.Mutex
	pushed []string
}

func (m *mockEngine) PushTx(_ context.Context, hexTx string) (string, error) {
	m.mu.Lock()
	m.pushed = append(m.pushed, hexTx)
	m.mu.Unlock()
	if m.pushErr != nil {
		return "", m.pushErr
	}
	return m.hash, nil
}

func (m *mockEngine) VersionData(context.Context) (network.VersionData, error) {
	if m.verErr != nil {
		return network.VersionData{}, m.verErr
	}
	return m.version, nil
}

func (m *mockEngine) pushedTxs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.pushed...)
}

// autoPresenter answers every secret-entry request immediately.
type autoPresenter struct {
	secret  string
	dismiss bool
}

func (p autoPresenter) Present(req pin.Request) {
	if p.dismiss {
		go req.OnCancel()
		return
	}
	go req.OnComplete(p.secret)
}

// newTestService assembles a Service over in-memory storage without a
// Wails application. Tests call Start themselves so they can register
// watchers first.
func newTestService(t *testing.T, cfg *config.Config, eng Engine) *Service {
	t.Helper()
	store, err := storage.NewInMemory()
	if err != nil {
		t.Fatalf("open storage: %v", err)
	}
	s := New("test")
	s.cfg = cfg
	s.store = store
	s.dial = func(string) Engine { return eng }
	s.wire()
	s.bridge = pin.NewBridge(autoPresenter{secret: "123456"}, s.state)
	t.Cleanup(s.Shutdown)
	return s
}

func mainnetConfig() *config.Config {
	return &config.Config{Network: network.Mainnet()}
}

// ─────────────────────────────────────────────────────────────────────────────
// Toggle Initialization
// ─────────────────────────────────────────────────────────────────────────────

func TestStartInitializesToggles(t *testing.T) {
	cfg := mainnetConfig()
	cfg.Toggles = map[string]bool{feature.FlagNanoContracts: true}
	s := newTestService(t, cfg, &mockEngine{})

	w := s.bus.Watch(event.Match(nil, feature.KindToggleInitialized))
	defer w.Cancel()
	s.Start()

	select {
	case <-w.C:
	case <-time.After(2 * time.Second):
		t.Fatal("toggle initialization event never emitted")
	}

	if !s.state.TogglesReady() {
		t.Error("toggles not marked ready")
	}
	on, err := s.FeatureEnabled(feature.FlagNanoContracts)
	if err != nil {
		t.Fatalf("feature enabled: %v", err)
	}
	if !on {
		t.Error("config override did not reach the toggle set")
	}
}

func TestStartCascadesWithoutWalletService(t *testing.T) {
	cfg := &config.Config{
		Network: network.Settings{
			Network: "privatenet",
			NodeURL: "https://node.example/",
		},
		Toggles: map[string]bool{
			feature.FlagWalletService:    true,
			feature.FlagPushNotification: true,
		},
	}
	s := newTestService(t, cfg, &mockEngine{})
	s.Start()

	toggles := s.state.Toggles()
	if toggles[feature.FlagWalletService] {
		t.Error("wallet-service toggle survived a network without wallet service")
	}
	if toggles[feature.FlagPushNotification] {
		t.Error("push-notification toggle survived a network without wallet service")
	}
	if st := s.Status(); st.WalletService {
		t.Error("status reports wallet service available")
	}
}

func TestStartPrefersPersistedSettings(t *testing.T) {
	cfg := mainnetConfig()
	cfg.Toggles = map[string]bool{feature.FlagWalletService: true}
	s := newTestService(t, cfg, &mockEngine{})

	custom := network.Settings{Network: "testnet", NodeURL: "https://custom.node/"}
	if err := network.SavePersisted(s.store, custom); err != nil {
		t.Fatalf("persist settings: %v", err)
	}
	s.Start()

	if got := s.Status().Network; got != custom {
		t.Fatalf("resolved network = %+v, want persisted %+v", got, custom)
	}
	if s.state.Toggles()[feature.FlagWalletService] {
		t.Error("cascade did not apply against the persisted settings")
	}
}

func TestSetFeatureToggle(t *testing.T) {
	t.Setenv("HWC_CONFIG_DIR", t.TempDir())
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	s := newTestService(t, cfg, &mockEngine{})
	s.Start()

	if err := s.SetFeatureToggle(feature.FlagNanoContracts, true); err != nil {
		t.Fatalf("set toggle: %v", err)
	}
	if !s.state.Toggles()[feature.FlagNanoContracts] {
		t.Error("override did not reach the live set")
	}

	reloaded, err := config.Load()
	if err != nil {
		t.Fatalf("reload config: %v", err)
	}
	if !reloaded.Toggles[feature.FlagNanoContracts] {
		t.Error("override not persisted to the config file")
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Send Transaction
// ─────────────────────────────────────────────────────────────────────────────

func TestSendTransaction(t *testing.T) {
	eng := &mockEngine{hash: "00abc123"}
	s := newTestService(t, mainnetConfig(), eng)
	s.Start()

	hash, err := s.SendTransaction("00ab01ff")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if hash != "00abc123" {
		t.Errorf("hash = %q, want 00abc123", hash)
	}
	if pushed := eng.pushedTxs(); len(pushed) != 1 || pushed[0] != "00ab01ff" {
		t.Errorf("pushed = %v", pushed)
	}
	if s.state.ModalVisible() {
		t.Error("modal flag still set after the flow")
	}
}

func TestSendTransactionEngineFailure(t *testing.T) {
	eng := &mockEngine{pushErr: errors.New("double spend")}
	s := newTestService(t, mainnetConfig(), eng)
	s.Start()

	if _, err := s.SendTransaction("00ab01ff"); err == nil {
		t.Fatal("expected failure outcome")
	}
	// The supervisor has absorbed the fault: the handler keeps serving.
	if _, err := s.SendTransaction("00ab02ff"); err == nil {
		t.Fatal("expected failure outcome on second send")
	}
	if got := len(eng.pushedTxs()); got != 2 {
		t.Fatalf("engine calls = %d, want 2", got)
	}
}

func TestSendTransactionPinDismissed(t *testing.T) {
	eng := &mockEngine{hash: "00abc123"}
	s := newTestService(t, mainnetConfig(), eng)
	s.bridge = pin.NewBridge(autoPresenter{dismiss: true}, s.state)
	s.Start()

	_, err := s.SendTransaction("00ab01ff")
	if !errors.Is(err, pin.ErrCanceled) {
		t.Fatalf("err = %v, want ErrCanceled", err)
	}
	if got := len(eng.pushedTxs()); got != 0 {
		t.Fatalf("engine called %d times after dismissal", got)
	}
	if s.state.ModalVisible() {
		t.Error("modal flag still set after dismissal")
	}
}

func TestSendTransactionEmpty(t *testing.T) {
	eng := &mockEngine{}
	s := newTestService(t, mainnetConfig(), eng)
	s.Start()

	if _, err := s.SendTransaction("  "); err == nil {
		t.Fatal("expected error for empty transaction")
	}
	if got := len(eng.pushedTxs()); got != 0 {
		t.Fatalf("engine called %d times", got)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Network Settings Update
// ─────────────────────────────────────────────────────────────────────────────

func TestUpdateNetworkSettings(t *testing.T) {
	eng := &mockEngine{version: network.VersionData{Version: "0.62.0", Network: "testnet"}}
	s := newTestService(t, mainnetConfig(), eng)
	s.Start()

	candidate := network.Settings{NodeURL: " https://testnet.node/ "}
	if err := s.UpdateNetworkSettings(candidate); err != nil {
		t.Fatalf("update: %v", err)
	}

	st := s.Status()
	if st.Network.Network != "testnet" {
		t.Errorf("network = %q, want the probed id", st.Network.Network)
	}
	if st.Network.NodeURL != "https://testnet.node/" {
		t.Errorf("node url = %q, want trimmed candidate", st.Network.NodeURL)
	}
	if st.WalletService {
		t.Error("wallet service reported available without a url")
	}
	if s.state.Toggles()[feature.FlagWalletService] {
		t.Error("cascade did not run after the switch")
	}

	persisted, err := network.LoadPersisted(s.store)
	if err != nil {
		t.Fatalf("load persisted: %v", err)
	}
	if persisted == nil || persisted.Network != "testnet" {
		t.Fatalf("persisted = %+v, want the applied settings", persisted)
	}
}

func TestUpdateNetworkSettingsProbeFailure(t *testing.T) {
	eng := &mockEngine{verErr: network.ErrVersionData}
	s := newTestService(t, mainnetConfig(), eng)
	s.Start()

	before := s.Status().Network
	if err := s.UpdateNetworkSettings(network.Settings{NodeURL: "https://down.node/"}); err == nil {
		t.Fatal("expected rejection when the probe fails")
	}
	if got := s.Status().Network; got != before {
		t.Errorf("network changed on failed update: %+v", got)
	}
	persisted, err := network.LoadPersisted(s.store)
	if err != nil {
		t.Fatalf("load persisted: %v", err)
	}
	if persisted != nil {
		t.Errorf("rejected settings were persisted: %+v", persisted)
	}
}

func TestUpdateNetworkSettingsRequiresNodeURL(t *testing.T) {
	s := newTestService(t, mainnetConfig(), &mockEngine{})
	s.Start()

	if err := s.UpdateNetworkSettings(network.Settings{NodeURL: "  "}); err == nil {
		t.Fatal("expected rejection for empty node url")
	}
}

func TestResetNetworkSettings(t *testing.T) {
	eng := &mockEngine{version: network.VersionData{Network: "testnet"}}
	cfg := mainnetConfig()
	cfg.Toggles = map[string]bool{feature.FlagWalletService: true}
	s := newTestService(t, cfg, eng)
	s.Start()

	if err := s.UpdateNetworkSettings(network.Settings{NodeURL: "https://testnet.node/"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if s.state.Toggles()[feature.FlagWalletService] {
		t.Fatal("cascade should have disabled the wallet-service toggle")
	}

	if err := s.ResetNetworkSettings(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if got := s.Status().Network; got != network.Mainnet() {
		t.Fatalf("network = %+v, want mainnet presets", got)
	}
	if !s.state.Toggles()[feature.FlagWalletService] {
		t.Error("toggle overlay not recomposed after reset")
	}
	persisted, err := network.LoadPersisted(s.store)
	if err != nil {
		t.Fatalf("load persisted: %v", err)
	}
	if persisted != nil {
		t.Fatalf("custom document survived reset: %+v", persisted)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Token Registry Bindings
// ─────────────────────────────────────────────────────────────────────────────

func TestTokenBindings(t *testing.T) {
	s := newTestService(t, mainnetConfig(), &mockEngine{})
	s.Start()

	if err := s.RegisterToken("07eb", "MyToken", "MTK"); err != nil {
		t.Fatalf("register: %v", err)
	}

	on, err := s.IsTokenRegistered("07eb")
	if err != nil || !on {
		t.Fatalf("registered = %v, %v", on, err)
	}

	list, err := s.RegisteredTokens(false)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].UID != "00" || list[1].UID != "07eb" {
		t.Fatalf("list = %+v", list)
	}

	if err := s.UnregisterToken("07eb"); err != nil {
		t.Fatalf("unregister: %v", err)
	}
	if on, _ := s.IsTokenRegistered("07eb"); on {
		t.Error("token still registered after removal")
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Modal Presenter
// ─────────────────────────────────────────────────────────────────────────────

func TestModalPresenter(t *testing.T) {
	var emitted []string
	shown := 0
	p := newModalPresenter(func(name string, _ any) { emitted = append(emitted, name) }, func() { shown++ })

	var secret string
	canceled := false
	p.Present(pin.Request{
		SessionID:  "s1",
		OnComplete: func(sec string) { secret = sec },
		OnCancel:   func() { canceled = true },
	})

	if len(emitted) != 1 || emitted[0] != EventPinRequest {
		t.Fatalf("emitted = %v", emitted)
	}
	if shown != 1 {
		t.Errorf("window shown %d times, want 1", shown)
	}
	if err := p.Complete("s1", "2468"); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if secret != "2468" {
		t.Errorf("secret = %q", secret)
	}
	if err := p.Complete("s1", "again"); err == nil {
		t.Error("second completion should report an unknown session")
	}

	p.Present(pin.Request{SessionID: "s2", OnCancel: func() { canceled = true }})
	if err := p.Dismiss("s2"); err != nil {
		t.Fatalf("dismiss: %v", err)
	}
	if !canceled {
		t.Error("dismiss did not reach the cancel callback")
	}
	if err := p.Dismiss("nope"); err == nil {
		t.Error("unknown session dismiss should fail")
	}
}
