// Package network resolves which Hathor network the wallet talks to
// and probes endpoints for their version and network identity.
package network

import (
	"github.com/r4mmer/hathor-wallet-core/feature"
	"github.com/r4mmer/hathor-wallet-core/storage"
)

// Settings describes the endpoints of a Hathor network. An empty
// WalletServiceURL means the network has no wallet service deployment.
type Settings struct {
	Network            string `json:"network"`
	NodeURL            string `json:"nodeUrl"`
	ExplorerURL        string `json:"explorerUrl"`
	WalletServiceURL   string `json:"walletServiceUrl"`
	WalletServiceWSURL string `json:"walletServiceWsUrl"`
}

// Mainnet is the built-in preset used until the user configures a
// custom network.
func Mainnet() Settings {
	return Settings{
		Network:            "mainnet",
		NodeURL:            "https://node1.mainnet.hathor.network/v1a/",
		ExplorerURL:        "https://explorer.hathor.network/",
		WalletServiceURL:   "https://wallet-service.hathor.network/",
		WalletServiceWSURL: "wss://ws.wallet-service.hathor.network/",
	}
}

// Resolve returns the persisted settings whenever a persisted document
// exists, even an all-zero one: presence alone is what marks custom
// network mode. With no persisted document the current in-memory value
// wins.
func Resolve(persisted *Settings, current Settings) Settings {
	if persisted != nil {
		return *persisted
	}
	return current
}

// WalletServiceUnavailable reports whether the network lacks a wallet
// service endpoint.
func (s Settings) WalletServiceUnavailable() bool {
	return s.WalletServiceURL == ""
}

// CascadeDisable returns a copy of toggles adjusted for s: without a
// wallet service, the wallet-service toggle and the push-notification
// toggle that rides on it are forced off. Other entries pass through.
// Applying it twice yields the same result.
func CascadeDisable(s Settings, toggles map[string]bool) map[string]bool {
	out := make(map[string]bool, len(toggles))
	for k, v := range toggles {
		out[k] = v
	}
	if s.WalletServiceUnavailable() {
		out[feature.FlagWalletService] = false
		out[feature.FlagPushNotification] = false
	}
	return out
}

// LoadPersisted reads the custom network settings document. A nil
// result without error means none is stored.
func LoadPersisted(store *storage.Store) (*Settings, error) {
	var s Settings
	ok, err := store.GetJSON(storage.KeyNetworkSettings, &s)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &s, nil
}

// SavePersisted stores s as the custom network settings document.
func SavePersisted(store *storage.Store, s Settings) error {
	return store.SetJSON(storage.KeyNetworkSettings, s)
}

// ClearPersisted removes the custom settings document, returning the
// wallet to the built-in presets.
func ClearPersisted(store *storage.Store) error {
	return store.Delete(storage.KeyNetworkSettings)
}
