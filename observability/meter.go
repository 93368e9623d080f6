package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/streamkit/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds OpenTelemetry metric instruments for stream observability.
type Metrics struct {
	streamTotal        metric.Int64Counter
	streamActive       metric.Int64UpDownCounter
	streamDuration     metric.Float64Histogram
	requestsDispatched metric.Int64Counter
	requestsInFlight   metric.Int64UpDownCounter
	resultsYielded     metric.Int64Counter
	requestsFailed     metric.Int64Counter
	requestDuration    metric.Float64Histogram
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	streamTotal, err := meter.Int64Counter("streamer.streams.total",
		metric.WithDescription("Total number of completed streams"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating streamer.streams.total counter: %w", err)
	}

	streamActive, err := meter.Int64UpDownCounter("streamer.streams.active",
		metric.WithDescription("Number of currently active streams"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating streamer.streams.active gauge: %w", err)
	}

	streamDuration, err := meter.Float64Histogram("streamer.stream.duration",
		metric.WithDescription("Duration of streams in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating streamer.stream.duration histogram: %w", err)
	}

	requestsDispatched, err := meter.Int64Counter("streamer.requests.dispatched",
		metric.WithDescription("Total number of dispatched requests"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating streamer.requests.dispatched counter: %w", err)
	}

	requestsInFlight, err := meter.Int64UpDownCounter("streamer.requests.inflight",
		metric.WithDescription("Number of requests dispatched but not yet settled"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating streamer.requests.inflight gauge: %w", err)
	}

	resultsYielded, err := meter.Int64Counter("streamer.results.yielded",
		metric.WithDescription("Total results yielded to consumers by status"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating streamer.results.yielded counter: %w", err)
	}

	requestsFailed, err := meter.Int64Counter("streamer.requests.failed",
		metric.WithDescription("Total requests that settled with a failure"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating streamer.requests.failed counter: %w", err)
	}

	requestDuration, err := meter.Float64Histogram("streamer.request.duration",
		metric.WithDescription("Time from dispatch to settlement in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating streamer.request.duration histogram: %w", err)
	}

	return &Metrics{
		streamTotal:        streamTotal,
		streamActive:       streamActive,
		streamDuration:     streamDuration,
		requestsDispatched: requestsDispatched,
		requestsInFlight:   requestsInFlight,
		resultsYielded:     resultsYielded,
		requestsFailed:     requestsFailed,
		requestDuration:    requestDuration,
	}, nil
}

// RecordStreamStart increments the active stream count.
func (m *Metrics) RecordStreamStart(ctx context.Context) {
	m.streamActive.Add(ctx, 1)
}

// RecordStreamEnd decrements active streams and records the completed stream.
func (m *Metrics) RecordStreamEnd(ctx context.Context, service, operation, status string, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("service", service),
		attribute.String("operation", operation),
		attribute.String("status", status),
	)
	m.streamActive.Add(ctx, -1)
	m.streamTotal.Add(ctx, 1, attrs)
	m.streamDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("service", service),
		attribute.String("operation", operation),
	))
}

// RecordDispatch records a request handed to the dispatcher.
func (m *Metrics) RecordDispatch(ctx context.Context) {
	m.requestsDispatched.Add(ctx, 1)
	m.requestsInFlight.Add(ctx, 1)
}

// RecordSettled records a request whose outcome arrived.
func (m *Metrics) RecordSettled(ctx context.Context) {
	m.requestsInFlight.Add(ctx, -1)
}

// RecordYield records a result delivered to the consumer.
func (m *Metrics) RecordYield(ctx context.Context, status string) {
	m.resultsYielded.Add(ctx, 1, metric.WithAttributes(
		attribute.String("status", status),
	))
}

// RecordFailure records a request that settled with a failure.
func (m *Metrics) RecordFailure(ctx context.Context, code string) {
	m.requestsFailed.Add(ctx, 1, metric.WithAttributes(
		attribute.String("code", code),
	))
}

// RecordRequestDuration records one request's dispatch-to-settlement latency.
func (m *Metrics) RecordRequestDuration(ctx context.Context, duration time.Duration) {
	m.requestDuration.Record(ctx, duration.Seconds())
}
