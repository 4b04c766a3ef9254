package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const serviceVersion = "1.0.0"

// getHome greets API consumers hitting the root path.
func getHome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Rancho Finanzas API"})
}

// getHealth reports liveness. Devices probe this endpoint to decide
// whether a sync attempt is worth making.
func getHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "rancho-finanzas-api",
		"version": serviceVersion,
	})
}
