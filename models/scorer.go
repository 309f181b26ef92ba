package models

// ScorerOutput is the JSON object the prediction script prints on stdout on
// a zero exit. Field names belong to the script's contract, not ours.
type ScorerOutput struct {
	WaterQuality   string                     `json:"water_quality"`
	RiskLevel      string                     `json:"risk_level"`
	Confidence     ScorerConfidence           `json:"confidence"`
	SensorReadings map[string]float64         `json:"sensor_readings"`
	Parameters     map[string]ScorerParameter `json:"parameters"`
}

type ScorerConfidence struct {
	Quality float64 `json:"quality"`
	Risk    float64 `json:"risk"`
}

type ScorerParameter struct {
	Value  float64 `json:"value"`
	Status string  `json:"status"`
}

// Scorer sensor_readings keys. The script normalizes whatever column names
// the uploaded CSV used into exactly these.
const (
	ParameterPH          = "pH"
	ParameterTemperature = "Temperature"
	ParameterTDS         = "TDS"
	ParameterDO          = "DO"
	ParameterTurbidity   = "Turbidity"
)

// AsSensorData converts the scorer's readings map into the typed form, or
// nil when the scorer returned no readings (image-only mode).
func (o ScorerOutput) AsSensorData() *SensorData {
	if len(o.SensorReadings) == 0 {
		return nil
	}
	return &SensorData{
		PH:          o.SensorReadings[ParameterPH],
		Temperature: o.SensorReadings[ParameterTemperature],
		TDS:         o.SensorReadings[ParameterTDS],
		DO:          o.SensorReadings[ParameterDO],
		Turbidity:   o.SensorReadings[ParameterTurbidity],
	}
}

// AsParameters converts the scorer's per-parameter block, or nil when absent.
func (o ScorerOutput) AsParameters() map[string]ParameterReading {
	if len(o.Parameters) == 0 {
		return nil
	}
	out := make(map[string]ParameterReading, len(o.Parameters))
	for name, p := range o.Parameters {
		out[name] = ParameterReading{Value: p.Value, Status: p.Status}
	}
	return out
}
