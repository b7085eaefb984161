package telemetry

import (
	"context"
	"log"
	"os"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Setup installs the W3C propagators and, when OTEL_EXPORTER_OTLP_ENDPOINT is
// set, a batching tracer provider. The returned func flushes and stops it.
func Setup(serviceName, version string) func(context.Context) error {
	// Outgoing backend calls carry trace context even without an exporter.
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		return noopShutdown
	}

	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(endpoint)}
	if os.Getenv("OTEL_EXPORTER_OTLP_INSECURE") == "true" {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}
	exporter, err := otlptracegrpc.New(context.Background(), opts...)
	if err != nil {
		log.Printf("otel exporter error: %v", err)
		return noopShutdown
	}

	res, err := resource.New(context.Background(), resource.WithAttributes(
		semconv.ServiceName(serviceName),
		semconv.ServiceVersion(version),
	))
	if err != nil {
		log.Printf("otel resource error: %v", err)
	}

	provider := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(res),
		trace.WithSampler(trace.ParentBased(trace.TraceIDRatioBased(sampleRatio()))),
	)
	otel.SetTracerProvider(provider)
	log.Printf("tracing enabled endpoint=%s service=%s", endpoint, serviceName)

	return provider.Shutdown
}

func noopShutdown(context.Context) error { return nil }

// sampleRatio reads PORTAL_TRACE_SAMPLE_RATIO, clamped to [0,1]. Page
// renders are frequent, so the default keeps a quarter of root traces.
func sampleRatio() float64 {
	raw := os.Getenv("PORTAL_TRACE_SAMPLE_RATIO")
	if raw == "" {
		return 0.25
	}
	ratio, err := strconv.ParseFloat(raw, 64)
	if err != nil || ratio < 0 {
		return 0.25
	}
	if ratio > 1 {
		return 1
	}
	return ratio
}
