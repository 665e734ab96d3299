package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/Pranshu115/tatva/logger"
	"github.com/Pranshu115/tatva/version"
)

const tracerName = "github.com/Pranshu115/tatva"

// TracerConfig configures trace export.
type TracerConfig struct {
	// Enabled turns tracing on. When false no provider is installed and
	// spans are no-ops.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// Endpoint is the OTLP HTTP endpoint host:port (e.g. "localhost:4318").
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`
	// Insecure sends spans over plain HTTP.
	Insecure bool `yaml:"insecure" mapstructure:"insecure"`
	// SampleRate is the fraction of traces kept, 0.0 to 1.0.
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gte=0,lte=1"`
	// Environment is recorded on every span.
	Environment string `yaml:"environment" mapstructure:"environment"`
	// Version is the client version recorded on every span.
	Version string `yaml:"version" mapstructure:"version"`
}

// ApplyDefaults fills in the local collector endpoint and full sampling.
func (c *TracerConfig) ApplyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
		c.Insecure = true
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
	if c.Version == "" {
		c.Version = version.Short()
	}
}

// InitTracer installs a global tracer provider exporting over OTLP HTTP.
// The provider must be shut down on exit to flush buffered spans.
func InitTracer(ctx context.Context, cfg TracerConfig, serviceName string, log *logger.Logger) (*sdktrace.TracerProvider, error) {
	cfg.ApplyDefaults()
	if log == nil {
		log = logger.Nop()
	}

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("observability: create trace exporter: %w", err)
	}

	tp := NewTracerProvider(sdktrace.WithBatcher(exporter), cfg, serviceName)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(Propagator())

	log.WithComponent("observability").Info("tracer initialized", logger.Fields(
		"endpoint", cfg.Endpoint,
		"sample_rate", cfg.SampleRate,
	))
	return tp, nil
}

// NewTracerProvider builds a provider with the service resource and the
// configured sampler around the given span processor option.
func NewTracerProvider(processor sdktrace.TracerProviderOption, cfg TracerConfig, serviceName string) *sdktrace.TracerProvider {
	return sdktrace.NewTracerProvider(
		processor,
		sdktrace.WithResource(newResource(serviceName, cfg.Version, cfg.Environment)),
		sdktrace.WithSampler(sdktrace.ParentBased(newSampler(cfg.SampleRate))),
	)
}

// Propagator returns the W3C trace context and baggage propagator.
func Propagator() propagation.TextMapPropagator {
	return propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{})
}

// Shutdown flushes and stops tp, waiting at most five seconds. A nil
// provider is ignored.
func Shutdown(ctx context.Context, tp *sdktrace.TracerProvider, log *logger.Logger) {
	if tp == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := tp.Shutdown(ctx); err != nil && log != nil {
		log.Warn("tracer shutdown failed", logger.ErrorFields("tracer_shutdown", err))
	}
}

func newSampler(rate float64) sdktrace.Sampler {
	switch {
	case rate >= 1.0:
		return sdktrace.AlwaysSample()
	case rate <= 0:
		return sdktrace.NeverSample()
	default:
		return sdktrace.TraceIDRatioBased(rate)
	}
}

func newResource(serviceName, serviceVersion, environment string) *resource.Resource {
	return resource.NewSchemaless(
		attribute.String("service.name", serviceName),
		attribute.String("service.version", serviceVersion),
		attribute.String("deployment.environment", environment),
	)
}

// Tracer returns the client's tracer from the global provider.
func Tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// StartSpan starts a span with the client's tracer.
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return Tracer().Start(ctx, name, opts...)
}

// SetSpanError records err on the span in ctx.
func SetSpanError(ctx context.Context, err error) {
	span := trace.SpanFromContext(ctx)
	if err != nil && span.IsRecording() {
		span.RecordError(err)
	}
}
