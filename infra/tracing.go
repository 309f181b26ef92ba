package infra

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

type TelemetryRessources struct {
	TracerProvider    trace.TracerProvider
	Tracer            trace.Tracer
	TextMapPropagator propagation.TextMapPropagator
}

func NoopTelemetry() TelemetryRessources {
	return TelemetryRessources{
		TracerProvider:    noop.NewTracerProvider(),
		Tracer:            &noop.Tracer{},
		TextMapPropagator: nil,
	}
}

func InitTelemetry(configuration TelemetryConfiguration, apiVersion string) (TelemetryRessources, error) {
	if !configuration.Enabled {
		return NoopTelemetry(), nil
	}

	exporter, err := otlptracegrpc.New(context.Background())
	if err != nil {
		return TelemetryRessources{}, fmt.Errorf("otlptracegrpc.New error: %w", err)
	}

	res, err := resource.New(context.Background(),
		resource.WithTelemetrySDK(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String(configuration.ApplicationName),
			semconv.ServiceVersion(apiVersion),
		),
	)
	if err != nil {
		return TelemetryRessources{}, fmt.Errorf("resource.New error: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(RouteSampler{SamplingMap: configuration.SamplingMap}),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	tracer := tp.Tracer(configuration.ApplicationName)

	propagators := propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	)

	otel.SetTextMapPropagator(propagators)

	return TelemetryRessources{
		TracerProvider:    tp,
		Tracer:            tracer,
		TextMapPropagator: propagators,
	}, nil
}

type SpanKind int

const DEFAULT_SAMPLING_RATE = 0.3

const (
	SpanOther SpanKind = iota
	SpanHttpIngress
)

// Probe endpoints are hit every few seconds and would drown everything else.
var defaultRoutePrefixSampling = map[string]float64{
	"/health":   0.0,
	"/liveness": 0.0,
	"/version":  0.0,
	"/metrics":  0.0,
}

type RouteSampler struct {
	SamplingMap TelemetrySamplingMap
}

func (RouteSampler) Description() string {
	return "hydroscope-sampler"
}

func (rs RouteSampler) ShouldSample(p sdktrace.SamplingParameters) sdktrace.SamplingResult {
	var (
		kind     SpanKind
		value    string
		prob     = DEFAULT_SAMPLING_RATE
		decision = sdktrace.Drop
	)

	psc := trace.SpanContextFromContext(p.ParentContext)

	// This span should not be sampled if the parent is not. Except for the root
	// span ID (the one that does not have a trace ID).
	if psc.HasTraceID() && !psc.IsSampled() {
		return sdktrace.NeverSample().ShouldSample(p)
	}

	for _, attr := range p.Attributes {
		if attr.Key == semconv.HTTPRouteKey {
			kind = SpanHttpIngress
			value = attr.Value.AsString()
			break
		}
	}

rates:
	switch kind {
	case SpanHttpIngress:
		for prefix, prefixProb := range rs.SamplingMap.HttpRoutes {
			if strings.HasPrefix(value, prefix) {
				prob = prefixProb
				break rates
			}
		}
		for prefix, prefixProb := range defaultRoutePrefixSampling {
			if strings.HasPrefix(value, prefix) {
				prob = prefixProb
				break rates
			}
		}

	default:
		if ratio, ok := rs.SamplingMap.SpanNames[p.Name]; ok {
			prob = ratio
			break rates
		}

		// Children of a sampled trace are kept in full.
		prob = 1.0
	}

	traceId := binary.BigEndian.Uint64(p.TraceID[:8])

	if traceId < uint64(prob*float64(math.MaxUint64)) {
		decision = sdktrace.RecordAndSample
	}

	return sdktrace.SamplingResult{
		Decision:   decision,
		Attributes: p.Attributes,
		Tracestate: trace.SpanContextFromContext(p.ParentContext).TraceState(),
	}
}
