package httpclient

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/Pranshu115/tatva/httpclient"

// metrics are the instruments recorded by Client.Do.
type metrics struct {
	duration metric.Float64Histogram
	active   metric.Int64UpDownCounter
	failures metric.Int64Counter
}

func newMetrics(mp metric.MeterProvider) (*metrics, error) {
	meter := mp.Meter(meterName)

	duration, err := meter.Float64Histogram("http.client.request.duration",
		metric.WithDescription("Duration of backend calls"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("httpclient: create duration histogram: %w", err)
	}
	active, err := meter.Int64UpDownCounter("http.client.active_requests",
		metric.WithDescription("Backend calls in flight"))
	if err != nil {
		return nil, fmt.Errorf("httpclient: create active counter: %w", err)
	}
	failures, err := meter.Int64Counter("http.client.failures",
		metric.WithDescription("Failed backend calls by kind"))
	if err != nil {
		return nil, fmt.Errorf("httpclient: create failure counter: %w", err)
	}
	return &metrics{duration: duration, active: active, failures: failures}, nil
}

// begin marks a call in flight and returns the function that records its
// outcome.
func (m *metrics) begin(ctx context.Context, method string) func(resp *Response, err error) {
	start := time.Now()
	methodAttr := attribute.String("http.request.method", method)
	m.active.Add(ctx, 1, metric.WithAttributes(methodAttr))

	return func(resp *Response, err error) {
		m.active.Add(ctx, -1, metric.WithAttributes(methodAttr))

		attrs := []attribute.KeyValue{methodAttr}
		if resp != nil {
			attrs = append(attrs, attribute.Int("http.response.status_code", resp.StatusCode))
		}
		if err != nil {
			kind := attribute.String("error.type", KindOf(err).String())
			attrs = append(attrs, kind)
			m.failures.Add(ctx, 1, metric.WithAttributes(methodAttr, kind))
		}
		m.duration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(attrs...))
	}
}
