package app

import (
	"context"

	"github.com/r4mmer/hathor-wallet-core/network"
)

// Engine is the node-facing surface the wallet flows need. The
// production implementation is the fullnode REST client; key custody
// and transaction signing live behind it.
type Engine interface {
	// PushTx submits a signed transaction and returns its hash.
	PushTx(ctx context.Context, hexTx string) (string, error)

	// VersionData reports the node's version and network identity.
	VersionData(ctx context.Context) (network.VersionData, error)
}
