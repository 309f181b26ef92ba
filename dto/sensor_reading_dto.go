package dto

import (
	"math"
	"time"

	"github.com/hydroscope/hydroscope-backend/models"
	"github.com/hydroscope/hydroscope-backend/pure_utils"
)

type SensorReadingDto struct {
	Id              string    `json:"id"`
	Timestamp       time.Time `json:"timestamp"`
	PH              float64   `json:"pH"` //nolint:tagliatelle
	Temperature     float64   `json:"temperature"`
	TDS             float64   `json:"tds"`
	Turbidity       float64   `json:"turbidity"`
	DissolvedOxygen float64   `json:"dissolvedOxygen"`
}

func AdaptSensorReadingDto(reading models.SensorReading) SensorReadingDto {
	return SensorReadingDto{
		Id:              reading.Id,
		Timestamp:       reading.Timestamp,
		PH:              reading.PH,
		Temperature:     reading.Temperature,
		TDS:             reading.TDS,
		Turbidity:       reading.Turbidity,
		DissolvedOxygen: reading.DissolvedOxygen,
	}
}

func AdaptSensorReadingDtos(readings []models.SensorReading) []SensorReadingDto {
	return pure_utils.Map(readings, AdaptSensorReadingDto)
}

// CreateSensorReadingBody accepts missing fields as zero values, matching
// manual entry where not every probe is connected.
type CreateSensorReadingBody struct {
	PH              float64 `json:"pH"` //nolint:tagliatelle
	Temperature     float64 `json:"temperature"`
	TDS             float64 `json:"tds"`
	Turbidity       float64 `json:"turbidity"`
	DissolvedOxygen float64 `json:"dissolvedOxygen"`
}

func AdaptSensorReadingCreateInput(body CreateSensorReadingBody) models.SensorReadingCreateInput {
	return models.SensorReadingCreateInput{
		PH:              body.PH,
		Temperature:     body.Temperature,
		TDS:             body.TDS,
		Turbidity:       body.Turbidity,
		DissolvedOxygen: body.DissolvedOxygen,
	}
}

type SensorReadingStatsDto struct {
	Count           int        `json:"count"`
	PH              float64    `json:"pH"` //nolint:tagliatelle
	Temperature     float64    `json:"temperature"`
	TDS             float64    `json:"tds"`
	Turbidity       float64    `json:"turbidity"`
	DissolvedOxygen float64    `json:"dissolvedOxygen"`
	LatestTimestamp *time.Time `json:"latestTimestamp"`
}

// AdaptSensorReadingStatsDto rounds the means to two decimals for display.
func AdaptSensorReadingStatsDto(stats models.SensorReadingStats) SensorReadingStatsDto {
	out := SensorReadingStatsDto{
		Count:           stats.Count,
		PH:              round2(stats.PH),
		Temperature:     round2(stats.Temperature),
		TDS:             round2(stats.TDS),
		Turbidity:       round2(stats.Turbidity),
		DissolvedOxygen: round2(stats.DissolvedOxygen),
	}
	if !stats.LatestTimestamp.IsZero() {
		timestamp := stats.LatestTimestamp
		out.LatestTimestamp = &timestamp
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
