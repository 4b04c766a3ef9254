package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ghb72/Ranch-Finance/internal/core/domain"
	"github.com/ghb72/Ranch-Finance/internal/core/ports/repositories"
	"github.com/ghb72/Ranch-Finance/internal/dto"
)

// Client talks to the sync backend over HTTP. It implements
// repositories.RemoteLedger.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a remote ledger client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

var _ repositories.RemoteLedger = (*Client)(nil)

// PushBatch sends the pending set as one batch to POST /api/sync. Any
// non-2xx response means the remote acknowledged nothing.
func (c *Client) PushBatch(ctx context.Context, txns []domain.Transaction) error {
	body, err := json.Marshal(dto.SyncRequest{Transactions: dto.ToWireTransactions(txns)})
	if err != nil {
		return fmt.Errorf("failed to encode sync batch: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/sync", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build sync request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("sync request failed: %w", err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("sync request rejected: status %d", resp.StatusCode)
	}
	return nil
}

// FetchTransactions retrieves the remote ledger set from GET /api/transactions.
func (c *Client) FetchTransactions(ctx context.Context) ([]domain.Transaction, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/transactions", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build transactions request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("transactions request failed: %w", err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("transactions request rejected: status %d", resp.StatusCode)
	}

	var payload dto.TransactionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode transactions response: %w", err)
	}
	return dto.FromWireTransactions(payload.Transactions), nil
}

// Ping reports whether the backend's health endpoint answers.
func (c *Client) Ping(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", nil)
	if err != nil {
		return false
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer drainAndClose(resp.Body)
	return resp.StatusCode == http.StatusOK
}

func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}
