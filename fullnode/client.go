// Package fullnode is a minimal REST client for a Hathor full node,
// covering the endpoints the wallet flows rely on: the version document
// and transaction push.
package fullnode

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/r4mmer/hathor-wallet-core/network"
)

const requestTimeout = 30 * time.Second

// Client talks to a single full node API root, e.g.
// "https://node1.mainnet.hathor.network/v1a/".
type Client struct {
	baseURL string
	client  *http.Client
}

// New creates a client bound to the node API at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: requestTimeout},
	}
}

// VersionData is the direct version probe. Any fault collapses to
// network.ErrVersionData after the cause is logged.
func (c *Client) VersionData(ctx context.Context) (network.VersionData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/version", nil)
	if err != nil {
		slog.Error("build node version request", "url", c.baseURL, "error", err)
		return network.VersionData{}, network.ErrVersionData
	}

	resp, err := c.client.Do(req)
	if err != nil {
		slog.Error("fetch node version", "url", c.baseURL, "error", err)
		return network.VersionData{}, network.ErrVersionData
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Error("node version status", "url", c.baseURL, "status", resp.StatusCode)
		return network.VersionData{}, network.ErrVersionData
	}

	var data network.VersionData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		slog.Error("decode node version", "url", c.baseURL, "error", err)
		return network.VersionData{}, network.ErrVersionData
	}
	return data, nil
}

type pushTxRequest struct {
	HexTx string `json:"hex_tx"`
}

type pushTxResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Tx      struct {
		Hash string `json:"hash"`
	} `json:"tx"`
}

// PushTx submits a fully signed transaction and returns its hash. The
// node validates and broadcasts it; a rejection surfaces as an error
// carrying the node's message.
func (c *Client) PushTx(ctx context.Context, hexTx string) (string, error) {
	body, err := json.Marshal(pushTxRequest{HexTx: hexTx})
	if err != nil {
		return "", fmt.Errorf("encode push_tx request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/push_tx", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build push_tx request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("push tx: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("push tx: status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var out pushTxResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode push_tx response: %w", err)
	}
	if !out.Success {
		if out.Message == "" {
			out.Message = "node rejected transaction"
		}
		return "", fmt.Errorf("push tx: %s", out.Message)
	}
	return out.Tx.Hash, nil
}
