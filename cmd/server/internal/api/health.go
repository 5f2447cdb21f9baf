package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HandleHealth GET /health
func HandleHealth() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	}
}
