package observability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

type Options struct {
	// Registerer receives the OpenTelemetry Prometheus exporter. Nil disables
	// OpenTelemetry metrics.
	Registerer     prometheus.Registerer
	TracingEnabled bool
	SampleRatio    float64
	// SpanProcessors are attached to the tracer provider, e.g. an exporter or
	// a recorder in tests.
	SpanProcessors []sdktrace.SpanProcessor
}

// Observability owns the OpenTelemetry meter and tracer providers for one
// process. Providers are kept local rather than installed as otel globals.
type Observability struct {
	meterProvider  *metric.MeterProvider
	tracerProvider *sdktrace.TracerProvider
	tracer         trace.Tracer

	invocationCounter  otelmetric.Int64Counter
	invocationDuration otelmetric.Float64Histogram
}

func New(serviceName string, opts Options) (*Observability, error) {
	o := &Observability{}
	res := resource.NewSchemaless(attribute.String("service.name", serviceName))

	var meter otelmetric.Meter = metricnoop.NewMeterProvider().Meter(serviceName)
	if opts.Registerer != nil {
		exporter, err := otelprom.New(otelprom.WithRegisterer(opts.Registerer))
		if err != nil {
			return nil, fmt.Errorf("create prometheus exporter: %w", err)
		}
		o.meterProvider = metric.NewMeterProvider(metric.WithReader(exporter), metric.WithResource(res))
		meter = o.meterProvider.Meter(serviceName)
	}

	var err error
	o.invocationCounter, err = meter.Int64Counter(
		"invocations.processed",
		otelmetric.WithDescription("Number of code hook invocations processed"),
	)
	if err != nil {
		return nil, fmt.Errorf("create invocation counter: %w", err)
	}

	o.invocationDuration, err = meter.Float64Histogram(
		"invocations.duration",
		otelmetric.WithDescription("Code hook processing duration"),
		otelmetric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("create invocation histogram: %w", err)
	}

	if opts.TracingEnabled {
		tpOpts := []sdktrace.TracerProviderOption{
			sdktrace.WithResource(res),
			sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(opts.SampleRatio))),
		}
		for _, sp := range opts.SpanProcessors {
			tpOpts = append(tpOpts, sdktrace.WithSpanProcessor(sp))
		}
		o.tracerProvider = sdktrace.NewTracerProvider(tpOpts...)
		o.tracer = o.tracerProvider.Tracer(serviceName)
	} else {
		o.tracer = tracenoop.NewTracerProvider().Tracer(serviceName)
	}

	return o, nil
}

// NewNoop returns an Observability that records nothing.
func NewNoop() *Observability {
	o, _ := New("noop", Options{})
	return o
}

// StartInvocation opens the span covering a single code hook invocation.
func (o *Observability) StartInvocation(ctx context.Context, requestID string) (context.Context, trace.Span) {
	return o.tracer.Start(ctx, "codehook.invoke",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(attribute.String("faas.invocation_id", requestID)),
	)
}

func (o *Observability) RecordInvocation(ctx context.Context, intent, source, outcome string, duration time.Duration) {
	attrs := otelmetric.WithAttributes(
		attribute.String("intent", intent),
		attribute.String("source", source),
		attribute.String("outcome", outcome),
	)
	o.invocationCounter.Add(ctx, 1, attrs)
	o.invocationDuration.Record(ctx, float64(duration.Microseconds())/1000, attrs)
}

func (o *Observability) Shutdown(ctx context.Context) error {
	var errs []error
	if o.meterProvider != nil {
		errs = append(errs, o.meterProvider.Shutdown(ctx))
	}
	if o.tracerProvider != nil {
		errs = append(errs, o.tracerProvider.Shutdown(ctx))
	}
	return errors.Join(errs...)
}
