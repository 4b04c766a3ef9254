package handlers

import (
	"github.com/gin-gonic/gin"

	portsrepo "github.com/ghb72/Ranch-Finance/internal/core/ports/repositories"
)

// RegisterRoutes sets up all application routes over the ledger store.
func RegisterRoutes(r *gin.Engine, store portsrepo.LedgerStore) {
	r.GET("/", getHome)

	api := r.Group("/api")
	api.GET("/health", getHealth)
	registerSyncRoutes(api, store)
	registerTransactionRoutes(api, store)
}
