// Package telemetry exports hook run metrics to an OpenTelemetry collector.
//
// Export is opt-in through HOOKR_OTEL_ENABLED and HOOKR_OTEL_ENDPOINT.
// Without them every recorder is a [NoOp].
package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/raphi011/hookr/internal/store"
)

const serviceName = "hookr"

// Recorder observes hook runs.
type Recorder interface {
	ObserveRun(ctx context.Context, hook, outcome string, d time.Duration)
	Close(ctx context.Context) error
}

// New returns an OTLP exporter when cfg is active and a NoOp otherwise.
func New(ctx context.Context, cfg Config, version string) (Recorder, error) {
	if !cfg.Active() {
		return NoOp{}, nil
	}
	return NewExporter(ctx, cfg, version)
}

// Exporter exports hook run metrics to an OTEL Collector.
type Exporter struct {
	provider     *sdkmetric.MeterProvider
	runsTotal    metric.Int64Counter
	failedTotal  metric.Int64Counter
	durationHist metric.Float64Histogram
}

// NewExporter creates an OTLP/gRPC metrics exporter.
func NewExporter(ctx context.Context, cfg Config, version string) (*Exporter, error) {
	if !cfg.Active() {
		return nil, fmt.Errorf("OTEL exporter is disabled or endpoint not configured")
	}

	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}

	exp, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(version),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	return newExporter(sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)),
		sdkmetric.WithResource(res),
	))
}

func newExporter(provider *sdkmetric.MeterProvider) (*Exporter, error) {
	meter := provider.Meter(serviceName)

	runsTotal, err := meter.Int64Counter(
		"hookr_runs_total",
		metric.WithDescription("Total number of executed hook runs"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating runs counter: %w", err)
	}

	failedTotal, err := meter.Int64Counter(
		"hookr_runs_failed_total",
		metric.WithDescription("Hook runs that failed or were killed by a signal"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating failures counter: %w", err)
	}

	durationHist, err := meter.Float64Histogram(
		"hookr_run_duration_seconds",
		metric.WithDescription("Hook command duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration histogram: %w", err)
	}

	return &Exporter{
		provider:     provider,
		runsTotal:    runsTotal,
		failedTotal:  failedTotal,
		durationHist: durationHist,
	}, nil
}

// ObserveRun records one executed run of hook.
func (e *Exporter) ObserveRun(ctx context.Context, hook, outcome string, d time.Duration) {
	opt := metric.WithAttributes(
		attribute.String("hook", hook),
		attribute.String("outcome", outcome),
	)

	e.runsTotal.Add(ctx, 1, opt)
	if outcome != store.OutcomeSuccess {
		e.failedTotal.Add(ctx, 1, opt)
	}
	e.durationHist.Record(ctx, d.Seconds(), opt)
}

// Close shuts down the exporter and flushes any pending metrics.
func (e *Exporter) Close(ctx context.Context) error {
	return e.provider.Shutdown(ctx)
}
