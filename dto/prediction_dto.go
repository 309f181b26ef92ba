package dto

import (
	"time"

	"github.com/guregu/null/v5"

	"github.com/hydroscope/hydroscope-backend/models"
	"github.com/hydroscope/hydroscope-backend/pure_utils"
)

// PredictionDto keeps the key casing the dashboard and the blob exports
// agreed on; it mirrors the stored per-record JSON objects.
type PredictionDto struct {
	Id           string                         `json:"id"`
	Timestamp    time.Time                      `json:"timestamp"`
	WaterQuality string                         `json:"waterQuality"`
	RiskLevel    string                         `json:"riskLevel"`
	Confidence   ConfidenceDto                  `json:"confidence"`
	SensorData   *SensorDataDto                 `json:"sensorData,omitempty"`
	Parameters   map[string]ParameterReadingDto `json:"parameters,omitempty"`
	ImageUrl     null.String                    `json:"imageUrl"`
	Method       string                         `json:"method"`
}

type ConfidenceDto struct {
	Quality float64 `json:"quality"`
	Risk    float64 `json:"risk"`
}

// Sensor keys keep the scoring script's spelling.
type SensorDataDto struct {
	PH          float64 `json:"pH"`          //nolint:tagliatelle
	Temperature float64 `json:"Temperature"` //nolint:tagliatelle
	TDS         float64 `json:"TDS"`         //nolint:tagliatelle
	DO          float64 `json:"DO"`          //nolint:tagliatelle
	Turbidity   float64 `json:"Turbidity"`   //nolint:tagliatelle
}

type ParameterReadingDto struct {
	Value  float64 `json:"value"`
	Status string  `json:"status"`
}

func AdaptPredictionDto(record models.PredictionRecord) PredictionDto {
	out := PredictionDto{
		Id:           record.Id,
		Timestamp:    record.Timestamp,
		WaterQuality: string(record.WaterQuality),
		RiskLevel:    string(record.RiskLevel),
		Confidence: ConfidenceDto{
			Quality: record.Confidence.Quality,
			Risk:    record.Confidence.Risk,
		},
		Method: string(record.Method),
	}
	if record.ImageUrl != "" {
		out.ImageUrl = null.StringFrom(record.ImageUrl)
	}
	if record.SensorData != nil {
		out.SensorData = &SensorDataDto{
			PH:          record.SensorData.PH,
			Temperature: record.SensorData.Temperature,
			TDS:         record.SensorData.TDS,
			DO:          record.SensorData.DO,
			Turbidity:   record.SensorData.Turbidity,
		}
	}
	if record.Parameters != nil {
		out.Parameters = pure_utils.MapValues(record.Parameters,
			func(parameter models.ParameterReading) ParameterReadingDto {
				return ParameterReadingDto{
					Value:  parameter.Value,
					Status: parameter.Status,
				}
			})
	}
	return out
}

func AdaptPredictionDtos(records []models.PredictionRecord) []PredictionDto {
	return pure_utils.Map(records, AdaptPredictionDto)
}
