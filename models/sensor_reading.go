package models

import (
	"time"
)

// SensorReading is a manually entered measurement, independent of the
// sensor data embedded in prediction records. The two streams are never
// linked or reconciled.
type SensorReading struct {
	Id              string
	Timestamp       time.Time
	PH              float64
	Temperature     float64
	TDS             float64
	Turbidity       float64
	DissolvedOxygen float64
}

type SensorReadingCreateInput struct {
	PH              float64
	Temperature     float64
	TDS             float64
	Turbidity       float64
	DissolvedOxygen float64
}

// SensorReadingStats is the older analytics surface over manual readings:
// counts and per-field means, always computed from the local store.
type SensorReadingStats struct {
	Count           int
	PH              float64
	Temperature     float64
	TDS             float64
	Turbidity       float64
	DissolvedOxygen float64
	LatestTimestamp time.Time
}
