// Package tracing provides OpenTelemetry tracing for the Monumenten MCP server.
// Each tool call gets a span, and each registry query a child span under it.
package tracing

import (
	"context"
	"io"
	"os"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const TracerName = "monumenten-mcp-server"

// Config holds tracing configuration
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	Enabled        bool
	OTLPEndpoint   string // If set, uses OTLP exporter; otherwise stdout
	SampleRate     float64

	// Writer receives stdout exporter output. Defaults to stderr, since
	// stdout carries the stdio protocol stream.
	Writer io.Writer
}

// DefaultConfig reads tracing settings from the OTEL_* environment variables.
func DefaultConfig() Config {
	env := os.Getenv("OTEL_ENVIRONMENT")
	if env == "" {
		env = "development"
	}
	return Config{
		ServiceName:    "monumenten-mcp-server",
		ServiceVersion: "1.0.0",
		Environment:    env,
		Enabled:        os.Getenv("OTEL_ENABLED") == "true" || os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") != "",
		OTLPEndpoint:   os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		SampleRate:     parseSampleRate(os.Getenv("OTEL_SAMPLE_RATE")),
	}
}

// Setup installs the global tracer provider and returns its shutdown function.
// With tracing disabled it installs nothing and shutdown is a no-op.
func Setup(ctx context.Context, config Config) (func(context.Context) error, error) {
	if !config.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	// Attributes carry no schema URL, so they merge with whatever schema
	// the sdk's own detectors use.
	res, err := resource.New(ctx,
		resource.WithFromEnv(),
		resource.WithTelemetrySDK(),
		resource.WithAttributes(
			attribute.String("service.name", config.ServiceName),
			attribute.String("service.version", config.ServiceVersion),
			attribute.String("deployment.environment.name", config.Environment),
		),
	)
	if err != nil {
		return nil, err
	}

	exporter, err := newExporter(ctx, config)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler(config.SampleRate)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tp.Shutdown, nil
}

func newExporter(ctx context.Context, config Config) (sdktrace.SpanExporter, error) {
	if config.OTLPEndpoint != "" {
		return otlptracehttp.New(ctx,
			otlptracehttp.WithEndpoint(config.OTLPEndpoint),
			otlptracehttp.WithInsecure(),
		)
	}
	w := config.Writer
	if w == nil {
		w = os.Stderr
	}
	return stdouttrace.New(stdouttrace.WithWriter(w))
}

// sampler maps a sample rate onto a parent-based sampler; rates outside
// (0, 1) mean always or never.
func sampler(rate float64) sdktrace.Sampler {
	switch {
	case rate >= 1:
		return sdktrace.ParentBased(sdktrace.AlwaysSample())
	case rate <= 0:
		return sdktrace.ParentBased(sdktrace.NeverSample())
	default:
		return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(rate))
	}
}

// StartSpan starts a span on the server's tracer
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return otel.Tracer(TracerName).Start(ctx, name, opts...)
}

// StartToolSpan starts the span for one MCP tool call.
func StartToolSpan(ctx context.Context, tool, category, registry string) (context.Context, trace.Span) {
	return StartSpan(ctx, "mcp.tool."+tool,
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("mcp.tool.name", tool),
			attribute.String("mcp.tool.category", category),
			attribute.String("mcp.tool.registry", registry),
		))
}

// StartRegistrySpan starts the span for one SPARQL query against a registry.
func StartRegistrySpan(ctx context.Context, registry, action string) (context.Context, trace.Span) {
	name := "registry." + registry
	attrs := []attribute.KeyValue{attribute.String("registry.name", registry)}
	if action != "" {
		name += "." + action
		attrs = append(attrs, attribute.String("registry.action", action))
	}
	return StartSpan(ctx, name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...))
}

// parseSampleRate defaults to sampling everything when unset or malformed
func parseSampleRate(s string) float64 {
	if s == "" {
		return 1.0
	}
	rate, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 1.0
	}
	return rate
}
