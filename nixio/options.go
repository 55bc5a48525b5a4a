package nixio

import (
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// Option configures a Writer.
type Option func(*writerConfig)

type writerConfig struct {
	logger *slog.Logger
	tracer trace.Tracer
	meter  metric.Meter
}

func defaultOptions() writerConfig {
	return writerConfig{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		tracer: tracenoop.NewTracerProvider().Tracer(instrumentationName),
		meter:  metricnoop.NewMeterProvider().Meter(instrumentationName),
	}
}

// WithLogger sets a custom logger for the writer.
// If not provided, logging is discarded.
func WithLogger(logger *slog.Logger) Option {
	return func(c *writerConfig) {
		c.logger = logger
	}
}

// WithTracer sets an OpenTelemetry tracer for the writer. Mapping calls
// produce one span per block.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *writerConfig) {
		c.tracer = tracer
	}
}

// WithMeter sets an OpenTelemetry meter for the writer. Instruments
// count mapped objects by kind.
func WithMeter(meter metric.Meter) Option {
	return func(c *writerConfig) {
		c.meter = meter
	}
}
