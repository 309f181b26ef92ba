package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/hydroscope/hydroscope-backend/models"
	"github.com/hydroscope/hydroscope-backend/repositories"
	"github.com/hydroscope/hydroscope-backend/repositories/clock"
)

type SensorUsecaseTestSuite struct {
	suite.Suite
	store *repositories.LocalStore

	now time.Time
}

func (suite *SensorUsecaseTestSuite) SetupTest() {
	suite.store = repositories.NewLocalStore()
	suite.now = time.Date(2025, 6, 10, 15, 30, 0, 0, time.UTC)
}

func (suite *SensorUsecaseTestSuite) makeUsecase() SensorUsecase {
	return SensorUsecase{
		clock: clock.NewMock(suite.now),
		store: suite.store,
	}
}

func (suite *SensorUsecaseTestSuite) Test_CreateReading_nominal() {
	input := models.SensorReadingCreateInput{
		PH:              7.2,
		Temperature:     24.5,
		TDS:             150,
		Turbidity:       2.5,
		DissolvedOxygen: 6.8,
	}

	reading := suite.makeUsecase().CreateReading(context.Background(), input)

	t := suite.T()
	assert.NotEmpty(t, reading.Id)
	assert.Equal(t, suite.now, reading.Timestamp)
	assert.Equal(t, 7.2, reading.PH)
	assert.Equal(t, 6.8, reading.DissolvedOxygen)

	latest, err := suite.store.LatestSensorReading()
	assert.NoError(t, err)
	assert.Equal(t, reading, latest)
}

func (suite *SensorUsecaseTestSuite) Test_ListReadings_applies_default_limit() {
	uc := suite.makeUsecase()
	for range defaultSensorReadingLimit + 5 {
		uc.CreateReading(context.Background(), models.SensorReadingCreateInput{PH: 7})
	}

	readings := uc.ListReadings(context.Background(), 0)

	assert.Len(suite.T(), readings, defaultSensorReadingLimit)
}

func (suite *SensorUsecaseTestSuite) Test_ListReadings_explicit_limit() {
	uc := suite.makeUsecase()
	first := uc.CreateReading(context.Background(), models.SensorReadingCreateInput{PH: 6.8})
	second := uc.CreateReading(context.Background(), models.SensorReadingCreateInput{PH: 7.2})

	readings := uc.ListReadings(context.Background(), 1)

	t := suite.T()
	assert.Len(t, readings, 1)
	// Newest first.
	assert.Equal(t, second.Id, readings[0].Id)
	assert.NotEqual(t, first.Id, readings[0].Id)
}

func (suite *SensorUsecaseTestSuite) Test_LatestReading_empty_store() {
	_, err := suite.makeUsecase().LatestReading(context.Background())

	assert.ErrorIs(suite.T(), err, models.ErrNoSensorReadings)
}

func (suite *SensorUsecaseTestSuite) Test_ReadingStats_nominal() {
	uc := suite.makeUsecase()
	uc.CreateReading(context.Background(), models.SensorReadingCreateInput{PH: 6.8, Temperature: 24})
	uc.CreateReading(context.Background(), models.SensorReadingCreateInput{PH: 7.2, Temperature: 26})

	stats := uc.ReadingStats(context.Background())

	t := suite.T()
	assert.Equal(t, 2, stats.Count)
	assert.Equal(t, 7.0, stats.PH)
	assert.Equal(t, 25.0, stats.Temperature)
	assert.Equal(t, suite.now, stats.LatestTimestamp)
}

func (suite *SensorUsecaseTestSuite) Test_LocalSummary_nominal() {
	withSensors := analyticsTestRecord("rec-1", suite.now, models.WaterQualitySafe)
	withSensors.SensorData = &models.SensorData{PH: 7, Temperature: 24, TDS: 150, DO: 6.5, Turbidity: 2}
	suite.store.AddPrediction(withSensors)
	suite.store.AddPrediction(analyticsTestRecord("rec-2", suite.now, models.WaterQualityUnsafe))

	summary, averages := suite.makeUsecase().LocalSummary(context.Background())

	t := suite.T()
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 1, summary.Safe)
	assert.Equal(t, 1, summary.Unsafe)
	assert.Equal(t, 7.0, averages.PH)
}

func TestSensorUsecase(t *testing.T) {
	suite.Run(t, new(SensorUsecaseTestSuite))
}
