package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ghb72/Ranch-Finance/internal/core/domain"
	portsrepo "github.com/ghb72/Ranch-Finance/internal/core/ports/repositories"
	"github.com/ghb72/Ranch-Finance/internal/dto"
	"github.com/ghb72/Ranch-Finance/internal/middleware"
)

// transactionsHandler serves read access to the shared ledger.
type transactionsHandler struct {
	store portsrepo.LedgerStore
}

func newTransactionsHandler(store portsrepo.LedgerStore) *transactionsHandler {
	return &transactionsHandler{store: store}
}

// registerTransactionRoutes registers the pull and summary endpoints.
func registerTransactionRoutes(rg *gin.RouterGroup, store portsrepo.LedgerStore) {
	h := newTransactionsHandler(store)
	rg.GET("/transactions", h.listTransactions)
	rg.GET("/summary", h.getSummary)
}

// listTransactions returns the ledger, optionally windowed by start_date
// and end_date query params (YYYY-MM-DD, inclusive). Pulling devices call
// this without params to fetch the full set.
func (h *transactionsHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	txns, ok := h.fetch(c, logger)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.TransactionsResponse{
		Transactions: dto.ToWireTransactions(txns),
		Total:        len(txns),
	})
}

// getSummary aggregates totals over the same optional date window.
func (h *transactionsHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	txns, ok := h.fetch(c, logger)
	if !ok {
		return
	}

	summary := domain.Summarize(txns)
	c.JSON(http.StatusOK, dto.ToSummaryResponse(summary))
}

// fetch reads the optionally windowed transaction set, writing the error
// response itself when something is off.
func (h *transactionsHandler) fetch(c *gin.Context, logger *slog.Logger) ([]domain.Transaction, bool) {
	start := c.Query("start_date")
	end := c.Query("end_date")

	var (
		txns []domain.Transaction
		err  error
	)
	if start == "" && end == "" {
		txns, err = h.store.ListTransactions(c.Request.Context())
	} else {
		if !validDateParam(start) || !validDateParam(end) || start > end {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start_date and end_date must be YYYY-MM-DD and form a valid range"})
			return nil, false
		}
		txns, err = h.store.ListTransactionsByDateRange(c.Request.Context(), start, end)
	}
	if err != nil {
		logger.Error("Failed to read ledger store", slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Ledger store unavailable"})
		return nil, false
	}
	return txns, true
}

func validDateParam(date string) bool {
	_, err := time.Parse(domain.DateLayout, date)
	return err == nil
}
