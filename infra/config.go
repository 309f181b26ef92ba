package infra

type TelemetrySamplingMap struct {
	HttpRoutes map[string]float64
	SpanNames  map[string]float64
}

type TelemetryConfiguration struct {
	Enabled         bool
	ApplicationName string
	SamplingMap     TelemetrySamplingMap
}
