package api

import (
	"time"
)

type Configuration struct {
	Env                 string
	AppName             string
	ApiVersion          string
	Port                string
	DashboardUrl        string
	RequestLoggingLevel string
	SegmentWriteKey     string
	DisableSegment      bool

	// PredictionTimeout and BatchTimeout must stay above the scoring process
	// timeout so the scorer gets to report its own failure.
	DefaultTimeout    time.Duration
	PredictionTimeout time.Duration
	BatchTimeout      time.Duration

	EnablePrometheus bool
}
