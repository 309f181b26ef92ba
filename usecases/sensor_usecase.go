package usecases

import (
	"context"

	"github.com/google/uuid"

	"github.com/hydroscope/hydroscope-backend/models"
	"github.com/hydroscope/hydroscope-backend/repositories/clock"
	"github.com/hydroscope/hydroscope-backend/usecases/tracking"
)

const defaultSensorReadingLimit = 50

type sensorReadingStore interface {
	AddSensorReading(reading models.SensorReading)
	ListSensorReadings(limit int) []models.SensorReading
	LatestSensorReading() (models.SensorReading, error)
	SensorReadingStats() models.SensorReadingStats
	AllPredictions() []models.PredictionRecord
}

// SensorUsecase covers the manual-entry readings and the older local-only
// analytics surface. Manual readings and the sensor data embedded in
// prediction records are independent streams.
type SensorUsecase struct {
	clock clock.Clock
	store sensorReadingStore
}

func (uc SensorUsecase) CreateReading(ctx context.Context, input models.SensorReadingCreateInput) models.SensorReading {
	reading := models.SensorReading{
		Id:              uuid.NewString(),
		Timestamp:       uc.clock.Now().UTC(),
		PH:              input.PH,
		Temperature:     input.Temperature,
		TDS:             input.TDS,
		Turbidity:       input.Turbidity,
		DissolvedOxygen: input.DissolvedOxygen,
	}
	uc.store.AddSensorReading(reading)

	tracking.TrackEvent(ctx, models.AnalyticsSensorReadingCreated, map[string]interface{}{
		"reading_id": reading.Id,
	})

	return reading
}

func (uc SensorUsecase) ListReadings(ctx context.Context, limit int) []models.SensorReading {
	if limit <= 0 {
		limit = defaultSensorReadingLimit
	}
	return uc.store.ListSensorReadings(limit)
}

func (uc SensorUsecase) LatestReading(ctx context.Context) (models.SensorReading, error) {
	return uc.store.LatestSensorReading()
}

func (uc SensorUsecase) ReadingStats(ctx context.Context) models.SensorReadingStats {
	return uc.store.SensorReadingStats()
}

// LocalSummary aggregates prediction records straight from the local store,
// ignoring blob storage entirely.
func (uc SensorUsecase) LocalSummary(ctx context.Context) (models.PredictionSummary, models.ParameterAverages) {
	records := uc.store.AllPredictions()
	return models.Summarize(records), models.AverageSensorParameters(records)
}
