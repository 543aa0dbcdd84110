package network

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// ErrVersionData is what every probe failure collapses to. The
// underlying cause is logged, not returned.
var ErrVersionData = errors.New("could not fetch version data")

// VersionData is the slice of a version document the wallet cares
// about.
type VersionData struct {
	Version string `json:"version"`
	Network string `json:"network"`
}

// NodeAPI is the direct probe, answered by the fullnode connection the
// wallet already holds.
type NodeAPI interface {
	VersionData(ctx context.Context) (VersionData, error)
}

// walletServiceTimeout bounds every wallet service probe request.
const walletServiceTimeout = 10 * time.Second

// WalletServiceClient probes a wallet service deployment for its
// version document over HTTP.
type WalletServiceClient struct {
	baseURL string
	client  *http.Client
}

// NewWalletServiceClient creates a probe client bound to baseURL.
func NewWalletServiceClient(baseURL string) *WalletServiceClient {
	return &WalletServiceClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: walletServiceTimeout},
	}
}

// VersionData fetches the version document. Only HTTP 200 counts as
// success; any other status, transport failure, or undecodable body
// becomes ErrVersionData.
func (c *WalletServiceClient) VersionData(ctx context.Context) (VersionData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/version", nil)
	if err != nil {
		slog.Error("build wallet service version request", "url", c.baseURL, "error", err)
		return VersionData{}, ErrVersionData
	}

	resp, err := c.client.Do(req)
	if err != nil {
		slog.Error("fetch wallet service version", "url", c.baseURL, "error", err)
		return VersionData{}, ErrVersionData
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		slog.Error("wallet service version status", "url", c.baseURL, "status", resp.StatusCode, "body", string(body))
		return VersionData{}, ErrVersionData
	}

	var data VersionData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		slog.Error("decode wallet service version", "url", c.baseURL, "error", err)
		return VersionData{}, ErrVersionData
	}
	return data, nil
}

// Verify probes the node and, when given, the wallet service, and
// requires both to report the same network identifier. It returns that
// identifier. Pass a nil walletService for networks without one.
func Verify(ctx context.Context, node, walletService NodeAPI) (string, error) {
	nodeData, err := node.VersionData(ctx)
	if err != nil {
		return "", fmt.Errorf("probe node: %w", err)
	}
	if nodeData.Network == "" {
		return "", errors.New("node reported no network")
	}

	if walletService != nil {
		svcData, err := walletService.VersionData(ctx)
		if err != nil {
			return "", fmt.Errorf("probe wallet service: %w", err)
		}
		if svcData.Network != nodeData.Network {
			return "", fmt.Errorf("network mismatch: node is %q, wallet service is %q", nodeData.Network, svcData.Network)
		}
	}
	return nodeData.Network, nil
}
