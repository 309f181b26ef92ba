package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/hydroscope/hydroscope-backend/models"
	"github.com/hydroscope/hydroscope-backend/repositories"
	"github.com/hydroscope/hydroscope-backend/repositories/clock"
	"github.com/hydroscope/hydroscope-backend/usecases"
	"github.com/hydroscope/hydroscope-backend/utils"
)

// Handler tests run the real router over real in-memory repositories: the
// local store, a mem:// bucket when one is configured, and a mocked clock.
// Only the spots where a process boundary exists (scorer, cognito, aws
// clients) are faked.

var apiTestTime = time.Date(2025, 6, 10, 15, 30, 0, 0, time.UTC)

func testConfiguration() Configuration {
	return Configuration{
		Env:               "test",
		AppName:           "hydroscope-backend",
		ApiVersion:        "test",
		DefaultTimeout:    5 * time.Second,
		PredictionTimeout: 10 * time.Second,
		BatchTimeout:      30 * time.Second,
	}
}

func testRepositories(opts ...repositories.Option) repositories.Repositories {
	opts = append([]repositories.Option{
		repositories.WithClock(clock.NewMock(apiTestTime)),
	}, opts...)
	return repositories.NewRepositories(opts...)
}

func newTestRouter(t *testing.T, conf Configuration,
	repos repositories.Repositories, opts ...usecases.Option,
) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	uc := usecases.NewUsecases(repos, opts...)
	addRoutes(router, conf, uc, utils.NewAuthentication())
	return router
}

func testPrediction(id string, timestamp time.Time, quality models.WaterQuality) models.PredictionRecord {
	record := models.PredictionRecord{
		Id:           id,
		Timestamp:    timestamp,
		WaterQuality: quality,
		RiskLevel:    models.RiskLevelLow,
		Confidence:   models.Confidence{Quality: 90, Risk: 85},
		SensorData: &models.SensorData{
			PH: 7.0, Temperature: 25, TDS: 320, DO: 6.5, Turbidity: 2.5,
		},
		Parameters: map[string]models.ParameterReading{
			"pH": {Value: 7.0, Status: "Normal"},
		},
		Method: models.MethodHybrid,
	}
	if quality == models.WaterQualityUnsafe {
		record.RiskLevel = models.RiskLevelHigh
	}
	return record
}

func TestRouter(t *testing.T) {
	router := newTestRouter(t, testConfiguration(), testRepositories(),
		usecases.WithApiVersion("test"))

	t.Run("liveness", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "https://hydroscope.io/liveness", nil)

		r := httptest.NewRecorder()
		router.ServeHTTP(r, request)

		assert.Equal(t, http.StatusOK, r.Code)
		assert.JSONEq(t, `{"status": "ok"}`, r.Body.String())
	})

	t.Run("version", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "https://hydroscope.io/version", nil)

		r := httptest.NewRecorder()
		router.ServeHTTP(r, request)

		assert.Equal(t, http.StatusOK, r.Code)
		assert.JSONEq(t, `{"success": true, "version": "test"}`, r.Body.String())
	})

	t.Run("unknown route", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "https://hydroscope.io/nope", nil)

		r := httptest.NewRecorder()
		router.ServeHTTP(r, request)

		assert.Equal(t, http.StatusNotFound, r.Code)
	})

	t.Run("malformed authorization header", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "https://hydroscope.io/data/sensors", nil)
		request.Header.Set("Authorization", "Basic dXNlcg==")

		r := httptest.NewRecorder()
		router.ServeHTTP(r, request)

		assert.Equal(t, http.StatusBadRequest, r.Code)
	})

	t.Run("anonymous requests pass", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "https://hydroscope.io/data/sensors", nil)

		r := httptest.NewRecorder()
		router.ServeHTTP(r, request)

		assert.Equal(t, http.StatusOK, r.Code)
	})

	t.Run("metrics only when enabled", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "https://hydroscope.io/metrics", nil)

		r := httptest.NewRecorder()
		router.ServeHTTP(r, request)
		assert.Equal(t, http.StatusNotFound, r.Code)

		conf := testConfiguration()
		conf.EnablePrometheus = true
		withMetrics := newTestRouter(t, conf, testRepositories())

		r = httptest.NewRecorder()
		withMetrics.ServeHTTP(r, request)
		assert.Equal(t, http.StatusOK, r.Code)
	})
}
