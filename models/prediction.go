package models

import (
	"time"
)

type WaterQuality string

const (
	WaterQualitySafe   WaterQuality = "Safe"
	WaterQualityUnsafe WaterQuality = "Unsafe"
)

type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "Low"
	RiskLevelMedium RiskLevel = "Medium"
	RiskLevelHigh   RiskLevel = "High"
)

// PredictionMethod identifies which inputs produced a record.
type PredictionMethod string

const (
	MethodHybrid     PredictionMethod = "hybrid"
	MethodImageOnly  PredictionMethod = "image_only"
	MethodSensorOnly PredictionMethod = "sensor_only"
)

// Confidence carries the scorer's two confidence scores, in [0,100].
type Confidence struct {
	Quality float64
	Risk    float64
}

// SensorData holds the parameter values echoed back by the scorer when
// sensor input was supplied. Field order matches the scorer's feature order.
type SensorData struct {
	PH          float64
	Temperature float64
	TDS         float64
	DO          float64
	Turbidity   float64
}

// ParameterReading is one entry of the scorer's per-parameter assessment.
// Status is scorer-defined (currently "Normal" or "Abnormal") and is passed
// through without interpretation.
type ParameterReading struct {
	Value  float64
	Status string
}

// PredictionRecord is the unit of storage and of every analytics
// computation. Created exactly once per successful scorer invocation and
// never mutated afterwards.
type PredictionRecord struct {
	Id           string
	Timestamp    time.Time
	WaterQuality WaterQuality
	RiskLevel    RiskLevel
	Confidence   Confidence
	SensorData   *SensorData
	Parameters   map[string]ParameterReading
	ImageUrl     string
	Method       PredictionMethod
}

// Date returns the calendar-day key used for grouping and for the blob
// storage layout.
func (p PredictionRecord) Date() string {
	return p.Timestamp.UTC().Format(time.DateOnly)
}

// PredictionStorageReport distinguishes the durable local write from the
// best-effort blob writes of a single submission. Best-effort failures are
// logged and counted but never fail the request.
type PredictionStorageReport struct {
	DurableWrite bool
	BestEffort   map[string]error
}

// FailedWrites lists the names of the best-effort writes that failed.
func (r PredictionStorageReport) FailedWrites() []string {
	var failed []string
	for name, err := range r.BestEffort {
		if err != nil {
			failed = append(failed, name)
		}
	}
	return failed
}
