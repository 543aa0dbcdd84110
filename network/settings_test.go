package network

import (
	"maps"
	"testing"

	"github.com/r4mmer/hathor-wallet-core/feature"
	"github.com/r4mmer/hathor-wallet-core/storage"
)

func TestResolve(t *testing.T) {
	custom := Settings{Network: "testnet", NodeURL: "https://node.testnet.example/v1a/"}
	current := Mainnet()

	tests := []struct {
		name      string
		persisted *Settings
		want      Settings
	}{
		{"persisted wins", &custom, custom},
		{"empty persisted still wins", &Settings{}, Settings{}},
		{"nil persisted falls back", nil, current},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.persisted, current); got != tt.want {
				t.Errorf("resolve = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestWalletServiceUnavailable(t *testing.T) {
	if Mainnet().WalletServiceUnavailable() {
		t.Error("mainnet preset reported unavailable")
	}
	if !(Settings{Network: "privatenet", NodeURL: "http://localhost:8080/v1a/"}).WalletServiceUnavailable() {
		t.Error("settings without wallet service url reported available")
	}
}

func TestCascadeDisable(t *testing.T) {
	toggles := map[string]bool{
		feature.FlagWalletService:    true,
		feature.FlagPushNotification: true,
		feature.FlagNanoContracts:    true,
	}

	t.Run("unavailable forces dependent toggles off", func(t *testing.T) {
		got := CascadeDisable(Settings{}, toggles)
		want := map[string]bool{
			feature.FlagWalletService:    false,
			feature.FlagPushNotification: false,
			feature.FlagNanoContracts:    true,
		}
		if !maps.Equal(got, want) {
			t.Fatalf("toggles = %v, want %v", got, want)
		}
		if !toggles[feature.FlagWalletService] {
			t.Error("input map was mutated")
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		once := CascadeDisable(Settings{}, toggles)
		twice := CascadeDisable(Settings{}, once)
		if !maps.Equal(once, twice) {
			t.Fatalf("second application changed the result: %v vs %v", once, twice)
		}
	})

	t.Run("available passes toggles through", func(t *testing.T) {
		got := CascadeDisable(Mainnet(), toggles)
		if !maps.Equal(got, toggles) {
			t.Fatalf("toggles = %v, want unchanged", got)
		}
	})
}

func TestPersistedRoundtrip(t *testing.T) {
	st, err := storage.NewInMemory()
	if err != nil {
		t.Fatalf("open storage: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	got, err := LoadPersisted(st)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != nil {
		t.Fatalf("expected no persisted settings, got %+v", got)
	}

	custom := Settings{Network: "testnet", NodeURL: "https://node.testnet.example/v1a/"}
	if err := SavePersisted(st, custom); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err = LoadPersisted(st)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got == nil || *got != custom {
		t.Fatalf("loaded = %+v, want %+v", got, custom)
	}

	if err := ClearPersisted(st); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if got, _ := LoadPersisted(st); got != nil {
		t.Fatalf("settings survived clear: %+v", got)
	}
}
