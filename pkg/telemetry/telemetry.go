// Package telemetry installs an OpenTelemetry tracer provider that exports
// spans over OTLP/gRPC.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/macropower/namify/pkg/version"
)

const ServiceName = "namify"

type options struct {
	exporter sdktrace.SpanExporter
	sampler  sdktrace.Sampler
	insecure bool
}

type Opt func(*options)

// WithExporter replaces the OTLP exporter.
func WithExporter(e sdktrace.SpanExporter) Opt {
	return func(o *options) {
		o.exporter = e
	}
}

// WithInsecure disables TLS for the OTLP connection.
func WithInsecure() Opt {
	return func(o *options) {
		o.insecure = true
	}
}

func WithSampler(s sdktrace.Sampler) Opt {
	return func(o *options) {
		o.sampler = s
	}
}

// Provider wraps the SDK tracer provider. The zero value, returned when no
// endpoint is configured, records nothing.
type Provider struct {
	sdk *sdktrace.TracerProvider
}

// New creates a [Provider] exporting to endpoint. An empty endpoint without
// [WithExporter] returns a no-op provider. Endpoints may be "host:port" or
// a URL; "http://" URLs imply [WithInsecure].
func New(ctx context.Context, endpoint string, opts ...Opt) (*Provider, error) {
	o := options{sampler: sdktrace.ParentBased(sdktrace.AlwaysSample())}
	for _, opt := range opts {
		opt(&o)
	}

	if o.exporter == nil {
		if endpoint == "" {
			return &Provider{}, nil
		}

		exp, err := newExporter(ctx, endpoint, o.insecure)
		if err != nil {
			return nil, err
		}

		o.exporter = exp
	}

	res := resource.NewWithAttributes(semconv.SchemaURL,
		semconv.ServiceName(ServiceName),
		semconv.ServiceVersion(version.GetVersion()),
	)

	return &Provider{
		sdk: sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(o.exporter),
			sdktrace.WithResource(res),
			sdktrace.WithSampler(o.sampler),
		),
	}, nil
}

func newExporter(ctx context.Context, endpoint string, insecure bool) (sdktrace.SpanExporter, error) {
	var opts []otlptracegrpc.Option

	switch {
	case strings.HasPrefix(endpoint, "http://"), strings.HasPrefix(endpoint, "https://"):
		opts = append(opts, otlptracegrpc.WithEndpointURL(endpoint))
	default:
		opts = append(opts, otlptracegrpc.WithEndpoint(endpoint))
	}

	if insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}

	exp, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create otlp exporter: %w", err)
	}

	return exp, nil
}

// Setup creates a [Provider] and installs it as the global tracer provider
// with W3C trace context propagation.
func Setup(ctx context.Context, endpoint string, opts ...Opt) (*Provider, error) {
	p, err := New(ctx, endpoint, opts...)
	if err != nil {
		return nil, err
	}

	if p.Enabled() {
		otel.SetTracerProvider(p.sdk)
		otel.SetTextMapPropagator(propagation.TraceContext{})
	}

	return p, nil
}

// Enabled reports whether spans are exported.
func (p *Provider) Enabled() bool {
	return p.sdk != nil
}

// TracerProvider returns the provider to pass to instrumented clients.
func (p *Provider) TracerProvider() trace.TracerProvider { //nolint:ireturn // Interface by design of the API.
	if p.sdk == nil {
		return noop.NewTracerProvider()
	}

	return p.sdk
}

// ForceFlush exports all ended spans.
func (p *Provider) ForceFlush(ctx context.Context) error {
	if p.sdk == nil {
		return nil
	}

	if err := p.sdk.ForceFlush(ctx); err != nil {
		return fmt.Errorf("flush spans: %w", err)
	}

	return nil
}

// Shutdown flushes pending spans and stops the exporter.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.sdk == nil {
		return nil
	}

	err := p.sdk.Shutdown(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("shutdown tracer provider: %w", err)
	}

	return nil
}
