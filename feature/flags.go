// Package feature evaluates rollout toggles for wallet capabilities.
// Values are initialized once at startup; until then every lookup gates
// on the initialization signal.
package feature

// KindToggleInitialized is emitted exactly once per run, after the
// toggle set has been stored and marked ready.
const KindToggleInitialized = "FEATURE_TOGGLE_INITIALIZED"

// Toggle names.
const (
	FlagWalletService    = "wallet-service.rollout"
	FlagPushNotification = "push-notification.rollout"
	FlagNanoContracts    = "nano-contracts.rollout"
	FlagNetworkSettings  = "network-settings.rollout"
)

// Defaults applies when a flag is missing from the initialized set.
// Unknown flags fall through to false.
var Defaults = map[string]bool{
	FlagWalletService:    false,
	FlagPushNotification: false,
	FlagNanoContracts:    false,
	FlagNetworkSettings:  true,
}
