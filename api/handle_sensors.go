package api

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/hydroscope/hydroscope-backend/dto"
	"github.com/hydroscope/hydroscope-backend/models"
	"github.com/hydroscope/hydroscope-backend/usecases"
)

func handleListSensorReadings(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var params struct {
			Limit int `form:"limit"`
		}
		if err := c.ShouldBind(&params); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}

		usecase := uc.NewSensorUsecase()
		readings := usecase.ListReadings(ctx, params.Limit)

		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"count":    len(readings),
			"readings": dto.AdaptSensorReadingDtos(readings),
		})
	}
}

func handleCreateSensorReading(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.CreateSensorReadingBody
		if err := c.ShouldBindJSON(&body); err != nil {
			presentError(ctx, c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}

		usecase := uc.NewSensorUsecase()
		reading := usecase.CreateReading(ctx, dto.AdaptSensorReadingCreateInput(body))

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"reading": dto.AdaptSensorReadingDto(reading),
		})
	}
}

func handleLatestSensorReading(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		usecase := uc.NewSensorUsecase()
		reading, err := usecase.LatestReading(ctx)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"reading": dto.AdaptSensorReadingDto(reading),
		})
	}
}

// handleSensorReadingStats serves the pre-dashboard stats page. It reduces
// manual readings only, never blob data.
func handleSensorReadingStats(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		usecase := uc.NewSensorUsecase()
		stats := usecase.ReadingStats(ctx)

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"stats":   dto.AdaptSensorReadingStatsDto(stats),
		})
	}
}

func handleLocalAnalyticsSummary(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		usecase := uc.NewSensorUsecase()
		summary, averages := usecase.LocalSummary(ctx)

		c.JSON(http.StatusOK, gin.H{
			"success":           true,
			"summary":           dto.AdaptPredictionSummaryDto(summary),
			"averageParameters": dto.AdaptParameterAveragesDto(averages),
		})
	}
}
