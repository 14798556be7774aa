// Package retry re-runs API calls that failed to reach the server.
//
// Only BadConnection errors are retried by default: a BadStatus reply means
// the server saw the request, and repeating an order placement after one
// could place it twice.
package retry

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog"

	"cbadv/pkg/core"
)

const (
	DefaultMaxTries        = 3
	DefaultInitialInterval = 250 * time.Millisecond
	DefaultMaxInterval     = 5 * time.Second
)

type options struct {
	maxTries        uint
	initialInterval time.Duration
	maxInterval     time.Duration
	retryable       func(error) bool
	logger          zerolog.Logger
}

// Option configures Do.
type Option func(*options)

// WithMaxTries bounds the total number of attempts, the first included.
func WithMaxTries(n uint) Option {
	return func(o *options) {
		if n > 0 {
			o.maxTries = n
		}
	}
}

// WithInterval sets the first and the largest wait between attempts.
func WithInterval(initial, ceiling time.Duration) Option {
	return func(o *options) {
		if initial > 0 {
			o.initialInterval = initial
		}
		if ceiling >= initial {
			o.maxInterval = ceiling
		}
	}
}

// WithRetryable replaces the default core.IsBadConnection predicate.
func WithRetryable(fn func(error) bool) Option {
	return func(o *options) {
		if fn != nil {
			o.retryable = fn
		}
	}
}

// WithLogger logs each retry at warn level.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Do calls op until it succeeds, fails with a non-retryable error, or runs
// out of attempts. The last error is returned unchanged. Cancelling ctx while
// waiting yields an Unknown error wrapping the context error.
func Do[T any](ctx context.Context, op func(ctx context.Context) (T, error), opts ...Option) (T, error) {
	o := options{
		maxTries:        DefaultMaxTries,
		initialInterval: DefaultInitialInterval,
		maxInterval:     DefaultMaxInterval,
		retryable:       core.IsBadConnection,
		logger:          zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = o.initialInterval
	b.MaxInterval = o.maxInterval

	attempt := 0
	res, err := backoff.Retry(ctx, func() (T, error) {
		attempt++
		res, err := op(ctx)
		if err != nil && !o.retryable(err) {
			return res, backoff.Permanent(err)
		}
		return res, err
	},
		backoff.WithBackOff(b),
		backoff.WithMaxTries(o.maxTries),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(func(err error, wait time.Duration) {
			o.logger.Warn().
				Err(err).
				Int("attempt", attempt).
				Dur("wait", wait).
				Msg("retrying")
		}),
	)
	if err == nil {
		return res, nil
	}

	var permanent *backoff.PermanentError
	if errors.As(err, &permanent) {
		err = permanent.Unwrap()
	}
	if _, typed := core.TypeOf(err); !typed && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
		return res, core.WrapError(core.ErrorTypeUnknown, "retry canceled", err)
	}
	return res, err
}
