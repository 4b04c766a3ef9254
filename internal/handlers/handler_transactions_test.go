package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghb72/Ranch-Finance/internal/adapters/memory"
	"github.com/ghb72/Ranch-Finance/internal/core/domain"
	portsrepo "github.com/ghb72/Ranch-Finance/internal/core/ports/repositories"
	"github.com/ghb72/Ranch-Finance/internal/dto"
)

func seededStore(t *testing.T) portsrepo.LedgerStore {
	t.Helper()
	store := memory.NewLedgerStore()
	_, err := store.AppendTransactions(context.Background(), []domain.Transaction{
		{GlobalID: "a", Kind: domain.Income, Amount: decimal.NewFromInt(500), Date: "2026-08-01", Category: domain.CategoryLivestockRange, PaymentMethod: domain.PaymentTransfer, Author: "Guillermo"},
		{GlobalID: "b", Kind: domain.Expense, Amount: decimal.NewFromFloat(120.50), Date: "2026-08-15", Category: domain.CategoryAgriculture, PaymentMethod: domain.PaymentCash, Author: "Guillermo"},
		{GlobalID: "c", Kind: domain.Expense, Amount: decimal.NewFromInt(40), Date: "2026-09-02", Category: domain.CategoryGeneral, PaymentMethod: domain.PaymentCard, Author: "Elena"},
	})
	require.NoError(t, err)
	return store
}

func TestListTransactions_FullSet(t *testing.T) {
	router := newTestRouter(seededStore(t))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/transactions", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.TransactionsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Total)
	assert.Len(t, resp.Transactions, 3)
}

func TestListTransactions_DateWindow(t *testing.T) {
	router := newTestRouter(seededStore(t))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/transactions?start_date=2026-08-01&end_date=2026-08-31", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.TransactionsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Total)
	for _, txn := range resp.Transactions {
		assert.NotEqual(t, "c", txn.ID)
	}
}

func TestListTransactions_RejectsBadWindow(t *testing.T) {
	router := newTestRouter(seededStore(t))

	for _, query := range []string{
		"?start_date=2026-08-01",                          // missing end
		"?start_date=01/08/2026&end_date=2026-08-31",      // bad format
		"?start_date=2026-09-01&end_date=2026-08-01",      // inverted
		"?start_date=2026-08-01&end_date=not-a-date",      // garbage
	} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/transactions"+query, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, query)
	}
}

func TestGetSummary(t *testing.T) {
	router := newTestRouter(seededStore(t))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/summary?start_date=2026-08-01&end_date=2026-08-31", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.SummaryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.TotalIncome.Equal(decimal.NewFromInt(500)))
	assert.True(t, resp.TotalExpense.Equal(decimal.NewFromFloat(120.50)))
	assert.True(t, resp.Balance.Equal(decimal.NewFromFloat(379.50)))
	assert.Equal(t, 2, resp.Count)
}

func TestGetSummary_StoreFailureReturns503(t *testing.T) {
	router := newTestRouter(brokenStore{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/summary", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
