package infra

import (
	"github.com/cockroachdb/errors"
	"github.com/getsentry/sentry-go"
)

func SetupSentry(dsn, env, apiVersion string) {
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:           dsn,
		EnableTracing: true,
		Release:       apiVersion,
		Environment:   env,
		TracesSampler: sentry.TracesSampler(func(ctx sentry.SamplingContext) float64 {
			if ctx.Span.Name == "GET /liveness" {
				return 0.0
			}
			if ctx.Span.Name == "GET /health" {
				return 0.0
			}
			if ctx.Span.Name == "GET /metrics" {
				return 0.0
			}
			// Sensor boards push readings continuously.
			if ctx.Span.Name == "POST /data/sensors" {
				return 0.05
			}
			if ctx.Span.Name == "POST /predict" {
				return 0.1
			}
			return 0.2
		}),
		// Relative to the trace sampling rate, revisit once volumes go up.
		ProfilesSampleRate: 0.2,
		BeforeSend: func(event *sentry.Event, hint *sentry.EventHint) *sentry.Event {
			if event.Request != nil {
				event.Request.Headers["Authorization"] = "[redacted]"
			}
			if hint != nil && event != nil && len(event.Exception) > 0 {
				originalErr := errors.UnwrapAll(hint.OriginalException)
				event.Exception[len(event.Exception)-1].Type = originalErr.Error()
			}
			return event
		},
	}); err != nil {
		panic(err)
	}
}
