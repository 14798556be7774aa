// Package http wraps a resty client for signed REST calls.
//
// The client never retries and never decodes bodies: it returns the status,
// headers and raw bytes so the caller can classify the outcome.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	nethttp "net/http"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"resty.dev/v3"
)

var (
	// ErrClosed is returned by Do after Close.
	ErrClosed = errors.New("http: client is closed")
	// ErrReadBody wraps a failure while reading a response body.
	// Do returns it together with a Response carrying the status.
	ErrReadBody = errors.New("http: read response body")
)

type Client struct {
	client *resty.Client
	logger zerolog.Logger
	mu     sync.RWMutex
	closed bool
}

type Config struct {
	Timeout time.Duration     `validate:"min=1ms"`
	Headers map[string]string `validate:"omitempty"`
}

// Response is a completed exchange with the body fully read.
type Response struct {
	StatusCode int
	Header     nethttp.Header
	Body       []byte
	Duration   time.Duration
}

type Option func(*options)

type options struct {
	logger    zerolog.Logger
	transport nethttp.RoundTripper
}

// WithLogger sets the logger used for request and response debug lines.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithTransport replaces the underlying round tripper.
func WithTransport(rt nethttp.RoundTripper) Option {
	return func(o *options) {
		o.transport = rt
	}
}

func NewClient(config *Config, opts ...Option) (*Client, error) {
	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	o := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	client := resty.New()
	client.SetTimeout(config.Timeout)
	client.SetRetryCount(0)
	client.SetDisableWarn(true)
	if o.transport != nil {
		client.SetTransport(o.transport)
	}
	for k, v := range config.Headers {
		client.SetHeader(k, v)
	}

	logger := o.logger

	client.AddRequestMiddleware(func(_ *resty.Client, req *resty.Request) error {
		logger.Debug().
			Str("method", req.Method).
			Str("url", req.URL).
			Msg("http request")
		return nil
	})

	client.AddResponseMiddleware(func(_ *resty.Client, resp *resty.Response) error {
		logger.Debug().
			Str("method", resp.Request.Method).
			Str("url", resp.Request.URL).
			Int("status", resp.StatusCode()).
			Dur("duration", resp.Duration()).
			Msg("http response")
		return nil
	})

	return &Client{
		client: client,
		logger: logger,
	}, nil
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.client.Close()
}

// Do sends one request. body is sent verbatim when non-nil.
// A transport failure returns a nil Response and the resty error.
func (c *Client) Do(ctx context.Context, method, url string, headers map[string]string, body []byte) (*Response, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return nil, ErrClosed
	}

	req := c.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		SetHeaders(headers)
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, url)
	if err != nil {
		if resp != nil && resp.Body != nil {
			resp.Body.Close()
		}
		c.logger.Debug().Err(err).
			Str("method", method).
			Str("url", url).
			Msg("http request failed")
		return nil, err
	}

	out := &Response{
		StatusCode: resp.StatusCode(),
		Header:     resp.Header(),
		Duration:   resp.Duration(),
	}
	if resp.Body == nil {
		return out, nil
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return out, fmt.Errorf("%w: %w", ErrReadBody, err)
	}
	out.Body = data
	return out, nil
}
