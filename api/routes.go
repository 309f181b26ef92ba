package api

import (
	"net/http"
	"time"

	limits "github.com/gin-contrib/size"
	"github.com/gin-contrib/timeout"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hydroscope/hydroscope-backend/usecases"
)

const (
	maxImageUploadSize = 20 * 1024 * 1024  // 20MB
	maxBatchUploadSize = 120 * 1024 * 1024 // 120MB
)

func timeoutMiddleware(duration time.Duration) gin.HandlerFunc {
	return timeout.New(
		timeout.WithTimeout(duration),
		timeout.WithHandler(func(c *gin.Context) {
			c.Next()
		}),
		timeout.WithResponse(func(c *gin.Context) {
			c.String(http.StatusRequestTimeout, "timeout")
		}),
	)
}

func addRoutes(r *gin.Engine, conf Configuration, uc usecases.Usecases, auth Authentication) {
	r.GET("/liveness", handleLivenessProbe())
	r.GET("/health", handleHealth(uc))
	r.GET("/version", handleVersion(uc))

	if conf.EnablePrometheus {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	r.POST("/auth/register", handleRegister(uc))
	r.POST("/auth/confirm-registration", handleConfirmRegistration(uc))
	r.POST("/auth/login", handleLogin(uc))
	r.POST("/auth/complete-new-password", handleCompleteNewPassword(uc))
	r.POST("/auth/forgot-password", handleForgotPassword(uc))
	r.POST("/auth/confirm-forgot-password", handleConfirmForgotPassword(uc))

	router := r.Use(auth.Middleware)

	// The timeouts must outlive the scorer's own deadline so a slow scorer
	// fails with its own error instead of a blank 408.
	router.POST("/predict", limits.RequestSizeLimiter(maxImageUploadSize),
		timeoutMiddleware(conf.PredictionTimeout), handlePredict(uc))
	router.POST("/predict/batch", limits.RequestSizeLimiter(maxBatchUploadSize),
		timeoutMiddleware(conf.BatchTimeout), handlePredictBatch(uc))
	router.GET("/predict/history", handleListPredictions(uc))
	router.GET("/predict/history/:prediction_id", handleGetPrediction(uc))

	router.GET("/analytics/dashboard", handleAnalyticsDashboard(uc))
	router.GET("/analytics/dashboard/:days", handleAnalyticsDashboard(uc))
	router.GET("/analytics/analytics", handleAnalyticsReport(uc))
	router.GET("/analytics/analytics/:period", handleAnalyticsReport(uc))
	router.GET("/analytics/trends", handleAnalyticsTrends(uc))
	router.GET("/analytics/parameter-trends", handleAnalyticsParameterTrends(uc))
	router.GET("/analytics/distribution", handleAnalyticsDistribution(uc))
	router.GET("/analytics/daily", handleAnalyticsDaily(uc))
	router.GET("/analytics/summary", handleAnalyticsSummary(uc))
	router.GET("/analytics/dates", handleAnalyticsDates(uc))
	router.GET("/analytics/prediction/:prediction_id", handleAnalyticsPrediction(uc))

	router.GET("/data/sensors", handleListSensorReadings(uc))
	router.POST("/data/sensors", handleCreateSensorReading(uc))
	router.GET("/data/sensors/latest", handleLatestSensorReading(uc))
	router.GET("/data/analytics/summary", handleLocalAnalyticsSummary(uc))
	router.GET("/data/analytics/sensors", handleSensorReadingStats(uc))

	router.GET("/aws/s3/list", handleListS3Objects(uc))
	router.GET("/aws/s3/download/*object_key", handleDownloadS3Object(uc))
	router.GET("/aws/dynamodb/tables", handleListDynamoTables(uc))
	router.GET("/aws/dynamodb/tables/:table_name", handleDescribeDynamoTable(uc))
	router.GET("/aws/dynamodb/tables/:table_name/scan", handleScanDynamoTable(uc))
}
