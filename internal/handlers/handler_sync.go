package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portsrepo "github.com/ghb72/Ranch-Finance/internal/core/ports/repositories"
	"github.com/ghb72/Ranch-Finance/internal/dto"
	"github.com/ghb72/Ranch-Finance/internal/middleware"
)

// syncHandler accepts pending batches pushed by devices.
type syncHandler struct {
	store portsrepo.LedgerStore
}

func newSyncHandler(store portsrepo.LedgerStore) *syncHandler {
	return &syncHandler{store: store}
}

// registerSyncRoutes registers the push endpoint.
func registerSyncRoutes(rg *gin.RouterGroup, store portsrepo.LedgerStore) {
	h := newSyncHandler(store)
	rg.POST("/sync", h.pushBatch)
}

// pushBatch appends a device's batch to the shared ledger. The batch is
// all-or-nothing: any invalid record rejects the whole request so the
// device keeps everything pending and can retry verbatim.
func (h *syncHandler) pushBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Rejected sync batch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	for i, wire := range req.Transactions {
		if !wire.Amount.IsPositive() {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("transaction %d: amount must be greater than zero", i),
			})
			return
		}
	}

	added, err := h.store.AppendTransactions(c.Request.Context(), dto.FromWireTransactions(req.Transactions))
	if err != nil {
		logger.Error("Failed to append sync batch", slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Ledger store unavailable"})
		return
	}

	logger.Info("Sync batch accepted",
		slog.Int("received", len(req.Transactions)),
		slog.Int("appended", added))
	c.JSON(http.StatusOK, dto.SyncResponse{
		Synced:  added,
		Message: fmt.Sprintf("%d transaction(s) synced", added),
	})
}
