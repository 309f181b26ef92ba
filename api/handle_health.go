package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hydroscope/hydroscope-backend/dto"
	"github.com/hydroscope/hydroscope-backend/usecases"
)

// handleHealth always answers 200: a degraded component is reported in the
// body, not turned into a failing probe.
func handleHealth(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		usecase := uc.NewHealthUsecase()
		health := usecase.GetHealthStatus(ctx)

		c.JSON(http.StatusOK, dto.AdaptHealthStatus(health))
	}
}
