package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hydroscope/hydroscope-backend/usecases"
)

func handleVersion(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		versionUsecase := uc.NewVersionUsecase()

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"version": versionUsecase.ApiVersion,
		})
	}
}
