package remote_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghb72/Ranch-Finance/internal/adapters/remote"
	"github.com/ghb72/Ranch-Finance/internal/core/domain"
	"github.com/ghb72/Ranch-Finance/internal/dto"
)

func TestPushBatch_SendsWireFieldsOnly(t *testing.T) {
	var received dto.SyncRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/sync", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		json.NewEncoder(w).Encode(dto.SyncResponse{Synced: len(received.Transactions)})
	}))
	defer server.Close()

	client := remote.NewClient(server.URL, 5*time.Second)
	txn := domain.Transaction{
		LocalKey:      42,
		GlobalID:      "g-1",
		Kind:          domain.Income,
		Amount:        decimal.NewFromFloat(500),
		Date:          "2026-08-30",
		Category:      domain.CategoryGeneral,
		PaymentMethod: domain.PaymentCash,
		Author:        "Guillermo",
		SyncState:     domain.SyncPending,
		Attachment:    []byte{1, 2, 3},
	}

	err := client.PushBatch(context.Background(), []domain.Transaction{txn})
	require.NoError(t, err)
	require.Len(t, received.Transactions, 1)
	assert.Equal(t, "g-1", received.Transactions[0].ID)

	// Local-only fields must not appear anywhere in the wire shape.
	raw, err := json.Marshal(received.Transactions[0])
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "localKey")
	assert.NotContains(t, string(raw), "syncState")
	assert.NotContains(t, string(raw), "attachment")
}

func TestPushBatch_NonSuccessStatusIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "sheet unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := remote.NewClient(server.URL, 5*time.Second)
	err := client.PushBatch(context.Background(), []domain.Transaction{{GlobalID: "g-1"}})
	assert.Error(t, err)
}

func TestFetchTransactions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/transactions", r.URL.Path)
		json.NewEncoder(w).Encode(dto.TransactionsResponse{
			Transactions: []dto.WireTransaction{
				{ID: "a", Kind: "income", Amount: decimal.NewFromFloat(100), Date: "2026-08-01", Category: "agriculture", PaymentMethod: "cash"},
				{ID: "b", Kind: "expense", Amount: decimal.NewFromFloat(50), Date: "2026-08-02", Category: "nonsense", PaymentMethod: ""},
			},
			Total: 2,
		})
	}))
	defer server.Close()

	client := remote.NewClient(server.URL, 5*time.Second)
	txns, err := client.FetchTransactions(context.Background())
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, domain.CategoryAgriculture, txns[0].Category)
	// Unknown enum values degrade to defaults rather than failing the pull.
	assert.Equal(t, domain.CategoryGeneral, txns[1].Category)
	assert.Equal(t, domain.PaymentCash, txns[1].PaymentMethod)
}

func TestPing(t *testing.T) {
	healthy := true
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/health", r.URL.Path)
		if healthy {
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	}))
	defer server.Close()

	client := remote.NewClient(server.URL, time.Second)
	assert.True(t, client.Ping(context.Background()))

	healthy = false
	assert.False(t, client.Ping(context.Background()))

	server.Close()
	assert.False(t, client.Ping(context.Background()))
}
