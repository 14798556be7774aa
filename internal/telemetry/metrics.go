// Package telemetry records REST request metrics through OpenTelemetry.
package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "cbadv/rest"

// Metric names.
const (
	RequestsTotal  = "cbadv_rest_requests_total"
	RequestLatency = "cbadv_rest_request_latency"
)

// OutcomeOK labels a request that returned HTTP 200.
const OutcomeOK = "ok"

// Metrics holds the request instruments. A nil *Metrics records nothing.
type Metrics struct {
	requests metric.Int64Counter
	latency  metric.Float64Histogram
}

// New creates the instruments on provider, or on the global provider when nil.
func New(provider metric.MeterProvider) *Metrics {
	if provider == nil {
		provider = otel.GetMeterProvider()
	}
	meter := provider.Meter(meterName)

	m := &Metrics{}
	m.requests, _ = meter.Int64Counter(RequestsTotal,
		metric.WithDescription("REST requests issued, by method and outcome"),
		metric.WithUnit("{request}"))
	m.latency, _ = meter.Float64Histogram(RequestLatency,
		metric.WithDescription("Round-trip latency of REST requests"),
		metric.WithUnit("ms"))
	return m
}

// Record counts one request and its latency. outcome is OutcomeOK or an error kind.
func (m *Metrics) Record(ctx context.Context, method, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("outcome", outcome),
	)
	if m.requests != nil {
		m.requests.Add(ctx, 1, attrs)
	}
	if m.latency != nil {
		m.latency.Record(ctx, float64(elapsed)/float64(time.Millisecond), attrs)
	}
}
