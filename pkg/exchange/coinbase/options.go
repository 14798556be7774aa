package coinbase

import (
	"net/http"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"

	"cbadv/internal/clock"
)

// Option is a functional option for configuring the Signer and Client.
type Option func(*Options)

// Options holds the injectable collaborators of the Signer.
type Options struct {
	Logger        zerolog.Logger
	Clock         clock.Clock
	MeterProvider metric.MeterProvider
	Transport     http.RoundTripper
}

// WithLogger returns an option that sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithClock returns an option that sets the clock used for request timestamps.
func WithClock(c clock.Clock) Option {
	return func(o *Options) {
		o.Clock = c
	}
}

// WithMeterProvider returns an option that sets the OpenTelemetry meter provider.
// The global provider is used when unset.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *Options) {
		o.MeterProvider = mp
	}
}

// WithHTTPTransport returns an option that replaces the HTTP round tripper.
func WithHTTPTransport(rt http.RoundTripper) Option {
	return func(o *Options) {
		o.Transport = rt
	}
}

func applyOptions(opts ...Option) *Options {
	o := &Options{
		Logger: zerolog.Nop(),
		Clock:  clock.System(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
