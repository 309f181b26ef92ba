package integration

import (
	"net/http"
	"testing"
	"time"

	"github.com/gavv/httpexpect/v2"
	"github.com/stretchr/testify/assert"
)

func TestApiEndToEnd(t *testing.T) {
	e := httpexpect.Default(t, testServer.URL)

	e.GET("/liveness").Expect().Status(http.StatusOK).
		JSON().Object().HasValue("status", "ok")

	e.GET("/version").Expect().Status(http.StatusOK).
		JSON().Object().HasValue("version", testApiVersion)

	// Everything except the identity provider is wired in this deployment.
	// The health probe also opens the blob bucket for the first time.
	health := e.GET("/health").Expect().Status(http.StatusOK).JSON().Object()
	health.Value("statuses").Array().Length().IsEqual(3)

	// Record a manual sensor reading and read it back.
	e.POST("/data/sensors").
		WithJSON(map[string]any{
			"pH": 7.1, "temperature": 25.0, "tds": 320.0, "turbidity": 2.5, "dissolvedOxygen": 6.4,
		}).
		Expect().Status(http.StatusCreated).
		JSON().Object().Value("reading").
		Object().Value("id").String().NotEmpty()

	e.GET("/data/sensors").Expect().Status(http.StatusOK).
		JSON().Object().HasValue("count", 1)

	// Run a sensor-only prediction through the shell scorer.
	predictionId := e.POST("/predict").
		WithMultipart().
		WithFileBytes("csv", "readings.csv", []byte("pH,Temperature,TDS,DO,Turbidity\n7.1,25,320,6.5,2.5\n")).
		Expect().Status(http.StatusOK).
		JSON().Object().Value("prediction").
		Object().Value("id").String().NotEmpty().Raw()
	assert.NotEqual(t, predictionId, "")

	obj := e.GET("/predict/history").Expect().Status(http.StatusOK).JSON().Object()
	obj.HasValue("count", 1)
	obj.Value("predictions").Array().Length().IsEqual(1)

	e.GET("/predict/history/{prediction_id}", predictionId).
		Expect().Status(http.StatusOK).
		JSON().Object().Value("prediction").
		Object().HasValue("method", "sensor_only")

	// The analytics read path serves from the derived blob documents just
	// written, not from the local store.
	dashboard := e.GET("/analytics/dashboard").Expect().Status(http.StatusOK).JSON().Object()
	dashboard.HasValue("source", "s3")
	dashboard.Value("predictions").Array().Length().IsEqual(1)
	dashboard.Value("summary").Object().HasValue("total", 1)

	today := time.Now().UTC().Format(time.DateOnly)
	e.GET("/analytics/dates").Expect().Status(http.StatusOK).
		JSON().Object().Value("dates").Array().ContainsOnly(today)

	e.GET("/analytics/prediction/{prediction_id}", predictionId).
		Expect().Status(http.StatusOK).
		JSON().Object().HasValue("source", "s3")

	// No identity provider in this deployment.
	e.POST("/auth/login").
		WithJSON(map[string]any{"email": "ana@example.com", "password": "Str0ngPassword!"}).
		Expect().Status(http.StatusUnprocessableEntity)

	// The prediction shows up in the exported metrics.
	metrics := e.GET("/metrics").Expect().Status(http.StatusOK).Body().Raw()
	assert.Contains(t, metrics, "hydroscope_predictions_total")
}
