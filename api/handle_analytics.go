package api

import (
	"net/http"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/hydroscope/hydroscope-backend/dto"
	"github.com/hydroscope/hydroscope-backend/models"
	"github.com/hydroscope/hydroscope-backend/usecases"
)

// daysParam reads the day window from the path segment or, failing that, the
// query string. Absent means zero, which the usecase replaces with its
// default window.
func daysParam(c *gin.Context) (int, error) {
	raw := c.Param("days")
	if raw == "" {
		raw = c.Query("days")
	}
	if raw == "" {
		return 0, nil
	}

	days, err := strconv.Atoi(raw)
	if err != nil || days < 0 {
		return 0, errors.Wrapf(models.BadParameterError, "invalid days value %q", raw)
	}
	return days, nil
}

// periodParam never fails: unknown periods fall back to the default window,
// the way the dashboard has always expected.
func periodParam(c *gin.Context) models.AnalyticsPeriod {
	raw := c.Param("period")
	if raw == "" {
		raw = c.Query("period")
	}
	return models.AnalyticsPeriod(raw)
}

func handleAnalyticsDashboard(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		days, err := daysParam(c)
		if presentError(ctx, c, err) {
			return
		}

		usecase := uc.NewAnalyticsUsecase()
		report, source, err := usecase.Dashboard(ctx, days)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":           true,
			"source":            source,
			"predictions":       dto.AdaptPredictionDtos(report.Predictions),
			"summary":           dto.AdaptPredictionSummaryDto(report.Summary),
			"averageParameters": dto.AdaptParameterAveragesDto(report.AverageParameters),
		})
	}
}

func handleAnalyticsReport(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		usecase := uc.NewAnalyticsUsecase()
		report, source, err := usecase.Report(ctx, periodParam(c))
		if presentError(ctx, c, err) {
			return
		}

		adapted := dto.AdaptAnalyticsReportDto(report)
		c.JSON(http.StatusOK, gin.H{
			"success":             true,
			"source":              source,
			"summary":             adapted.Summary,
			"trends":              adapted.Trends,
			"parameterTrends":     adapted.ParameterTrends,
			"qualityDistribution": adapted.QualityDistribution,
			"riskDistribution":    adapted.RiskDistribution,
			"methodDistribution":  adapted.MethodDistribution,
			"dailyStats":          adapted.DailyStats,
		})
	}
}

func handleAnalyticsTrends(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		usecase := uc.NewAnalyticsUsecase()
		trends, source, err := usecase.Trends(ctx, periodParam(c))
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"source":  source,
			"trends":  dto.AdaptQualityTrendPointDtos(trends),
		})
	}
}

func handleAnalyticsParameterTrends(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		usecase := uc.NewAnalyticsUsecase()
		trends, source, err := usecase.ParameterTrends(ctx, periodParam(c))
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":         true,
			"source":          source,
			"parameterTrends": dto.AdaptParameterTrendPointDtos(trends),
		})
	}
}

func handleAnalyticsDistribution(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		usecase := uc.NewAnalyticsUsecase()
		distributions, source, err := usecase.Distributions(ctx, periodParam(c))
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":             true,
			"source":              source,
			"qualityDistribution": distributions.Quality,
			"riskDistribution":    distributions.Risk,
			"methodDistribution":  distributions.Method,
		})
	}
}

func handleAnalyticsDaily(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		days, err := daysParam(c)
		if presentError(ctx, c, err) {
			return
		}

		usecase := uc.NewAnalyticsUsecase()
		stats, source, err := usecase.DailyStats(ctx, days)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"source":     source,
			"dailyStats": dto.AdaptDailyStatDtos(stats),
		})
	}
}

func handleAnalyticsSummary(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		usecase := uc.NewAnalyticsUsecase()
		summary, averages, source, err := usecase.Summary(ctx, periodParam(c))
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":           true,
			"source":            source,
			"summary":           dto.AdaptPredictionSummaryDto(summary),
			"averageParameters": dto.AdaptParameterAveragesDto(averages),
		})
	}
}

func handleAnalyticsDates(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		usecase := uc.NewAnalyticsUsecase()
		dates, source, err := usecase.Dates(ctx)
		if presentError(ctx, c, err) {
			return
		}

		if dates == nil {
			dates = []string{}
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"source":  source,
			"dates":   dates,
		})
	}
}

func handleAnalyticsPrediction(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		predictionId := c.Param("prediction_id")

		usecase := uc.NewAnalyticsUsecase()
		record, source, err := usecase.Prediction(ctx, predictionId)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"source":     source,
			"prediction": dto.AdaptPredictionDto(record),
		})
	}
}
