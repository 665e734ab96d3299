package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/Pranshu115/tatva/logger"
)

// MeterConfig configures metric export.
type MeterConfig struct {
	// Enabled turns metrics on. When false instruments are no-ops.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// Endpoint is the OTLP HTTP endpoint host:port.
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`
	// Insecure sends metrics over plain HTTP.
	Insecure bool `yaml:"insecure" mapstructure:"insecure"`
	// Interval is how often metrics are pushed.
	Interval time.Duration `yaml:"interval" mapstructure:"interval" validate:"gte=0"`
}

// ApplyDefaults fills in the local collector endpoint and a 15s interval.
func (c *MeterConfig) ApplyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
		c.Insecure = true
	}
	if c.Interval <= 0 {
		c.Interval = 15 * time.Second
	}
}

// InitMeter installs a global meter provider pushing to an OTLP HTTP
// collector. The resource carries the same service attributes as spans.
func InitMeter(ctx context.Context, cfg MeterConfig, tracing TracerConfig, serviceName string, log *logger.Logger) (*sdkmetric.MeterProvider, error) {
	cfg.ApplyDefaults()
	tracing.ApplyDefaults()
	if log == nil {
		log = logger.Nop()
	}

	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("observability: create metric exporter: %w", err)
	}

	mp := NewMeterProvider(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(cfg.Interval)),
		serviceName, tracing.Version, tracing.Environment)
	otel.SetMeterProvider(mp)

	log.WithComponent("observability").Info("meter initialized", logger.Fields(
		"endpoint", cfg.Endpoint,
		"interval", cfg.Interval.String(),
	))
	return mp, nil
}

// NewMeterProvider builds a provider reading through reader.
func NewMeterProvider(reader sdkmetric.Reader, serviceName, serviceVersion, environment string) *sdkmetric.MeterProvider {
	return sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(reader),
		sdkmetric.WithResource(newResource(serviceName, serviceVersion, environment)),
	)
}

// ShutdownMeter flushes and stops mp, waiting at most five seconds. A nil
// provider is ignored.
func ShutdownMeter(ctx context.Context, mp *sdkmetric.MeterProvider, log *logger.Logger) {
	if mp == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mp.Shutdown(ctx); err != nil && log != nil {
		log.Warn("meter shutdown failed", logger.ErrorFields("meter_shutdown", err))
	}
}
