package app

// Event kinds carried on the wallet bus.
const (
	KindSendTx        = "SEND_TX"
	KindSendTxSuccess = "SEND_TX_SUCCESS"
	KindSendTxFailed  = "SEND_TX_FAILED"

	KindNetworkUpdate        = "NETWORK_SETTINGS_UPDATE_REQUEST"
	KindNetworkUpdateSuccess = "NETWORK_SETTINGS_UPDATE_SUCCESS"
	KindNetworkUpdateFailed  = "NETWORK_SETTINGS_UPDATE_FAILURE"
)

// Event names for frontend communication.
const (
	EventWallet         = "wallet-event"
	EventPinRequest     = "pin-request"
	EventTogglesUpdated = "feature-toggles-updated"
	EventNetworkUpdated = "network-settings-updated"
	EventTokensUpdated  = "token-registry-updated"
)
