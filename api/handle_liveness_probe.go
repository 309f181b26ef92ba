package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// The liveness probe only says the process is up. Component degradation is
// the health endpoint's business.
func handleLivenessProbe() func(c *gin.Context) {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	}
}
