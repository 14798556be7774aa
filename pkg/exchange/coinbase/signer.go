package coinbase

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"

	"cbadv/internal/auth"
	"cbadv/internal/circuitbreaker"
	"cbadv/internal/clock"
	httpClient "cbadv/internal/http"
	"cbadv/internal/ratelimit"
	"cbadv/internal/telemetry"
	"cbadv/pkg/core"
	"cbadv/pkg/exchange"
)

// Authentication headers.
const (
	HeaderAccessKey       = "CB-ACCESS-KEY"
	HeaderAccessSign      = "CB-ACCESS-SIGN"
	HeaderAccessTimestamp = "CB-ACCESS-TIMESTAMP"
)

const userAgent = "cbadv/1.0"

var (
	_ exchange.Transport     = (*Signer)(nil)
	_ exchange.ChannelSigner = (*Signer)(nil)
)

// Signer authenticates and sends REST calls. It owns one HTTP connection pool
// and is shared by pointer between the API modules. It is immutable after
// NewSigner and safe for concurrent use.
type Signer struct {
	key     auth.Key
	apiKey  string
	baseURL string

	http    *httpClient.Client
	limiter *ratelimit.Limiter
	breaker *circuitbreaker.Breaker
	clock   clock.Clock
	metrics *telemetry.Metrics
	logger  zerolog.Logger
}

// NewSigner validates config and builds a Signer from its credentials.
func NewSigner(config *core.Config, opts ...Option) (*Signer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	options := applyOptions(opts...)
	if config.LogLevel != "" {
		if level, err := zerolog.ParseLevel(config.LogLevel); err == nil {
			options.Logger = options.Logger.Level(level)
		}
	}

	key, err := auth.NewKey(config.Credentials.APISecret)
	if err != nil {
		return nil, err
	}

	httpOpts := []httpClient.Option{httpClient.WithLogger(options.Logger)}
	if options.Transport != nil {
		httpOpts = append(httpOpts, httpClient.WithTransport(options.Transport))
	}
	client, err := httpClient.NewClient(&httpClient.Config{
		Timeout: config.Timeout,
		Headers: map[string]string{"User-Agent": userAgent},
	}, httpOpts...)
	if err != nil {
		return nil, fmt.Errorf("create http client: %w", err)
	}

	var cb *circuitbreaker.Breaker
	if config.CircuitBreakerEnabled {
		cb = circuitbreaker.New(circuitbreaker.Config{
			FailThreshold:    config.CircuitBreakerFailThreshold,
			SuccessThreshold: config.CircuitBreakerSuccessThreshold,
			Timeout:          config.CircuitBreakerTimeout,
		}, options.Clock)
	}

	options.Logger.Debug().
		Object("credentials", config.Credentials).
		Str("base_url", config.BaseURL).
		Msg("signer created")

	return &Signer{
		key:     key,
		apiKey:  config.Credentials.APIKey,
		baseURL: strings.TrimRight(config.BaseURL, "/"),
		http:    client,
		limiter: ratelimit.New(config.RateLimitRequests, config.RateLimitPeriod),
		breaker: cb,
		clock:   options.Clock,
		metrics: telemetry.New(options.MeterProvider),
		logger:  options.Logger,
	}, nil
}

// APIKey returns the key identifier sent in CB-ACCESS-KEY.
func (s *Signer) APIKey() string {
	return s.apiKey
}

// Close releases the HTTP connection pool.
func (s *Signer) Close() error {
	return s.http.Close()
}

// SignChannel signs a streaming subscription for channel and product ids.
func (s *Signer) SignChannel(timestamp, channel string, ids []string) string {
	return s.key.SignChannel(timestamp, channel, ids)
}

// ChannelAuth returns a fresh timestamp and the matching channel signature.
func (s *Signer) ChannelAuth(channel string, ids []string) (timestamp, signature string) {
	timestamp = clock.Timestamp(s.clock)
	return timestamp, s.key.SignChannel(timestamp, channel, ids)
}

// Get issues a signed GET. The query is appended to the URL but not signed.
func (s *Signer) Get(ctx context.Context, resource, query string) (*core.Response, error) {
	return s.do(ctx, core.NewRequest(http.MethodGet, resource).SetQuery(query))
}

// Post issues a signed POST with a JSON body. A []byte body is sent verbatim;
// anything else is serialized once and the same bytes are signed and sent.
func (s *Signer) Post(ctx context.Context, resource, query string, body any) (*core.Response, error) {
	data, err := encodeBody(body)
	if err != nil {
		return nil, core.WrapError(core.ErrorTypeBadParse, "request body", err)
	}
	req := core.NewRequest(http.MethodPost, resource).
		SetQuery(query).
		SetBody(data).
		SetHeader("Content-Type", "application/json")
	return s.do(ctx, req)
}

func encodeBody(body any) ([]byte, error) {
	switch b := body.(type) {
	case nil:
		return []byte{}, nil
	case []byte:
		return b, nil
	case string:
		return []byte(b), nil
	default:
		return sonic.Marshal(body)
	}
}

func (s *Signer) do(ctx context.Context, req *core.Request) (*core.Response, error) {
	start := time.Now()

	resp, err := s.send(ctx, req)
	outcome := telemetry.OutcomeOK
	if err != nil {
		t, _ := core.TypeOf(err)
		outcome = t.String()
	}
	elapsed := time.Since(start)
	s.metrics.Record(ctx, req.Method, outcome, elapsed)

	event := s.logger.Debug()
	if err != nil {
		event = s.logger.Warn().Err(err)
	}
	event.
		Str("method", req.Method).
		Str("resource", req.Path).
		Str("outcome", outcome).
		Dur("duration", elapsed).
		Msg("rest call")

	return resp, err
}

func (s *Signer) send(ctx context.Context, req *core.Request) (*core.Response, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil, core.WrapError(core.ErrorTypeUnknown, req.Method+" "+req.Path+": request canceled", err)
		}
		return nil, core.WrapError(core.ErrorTypeBadConnection, "rate limiter: "+req.Method+" "+req.Path, err)
	}
	if !s.breaker.Allow() {
		return nil, core.NewError(core.ErrorTypeBadConnection, "circuit open: "+req.Method+" "+req.Path)
	}

	s.sign(req)

	raw, err := s.http.Do(ctx, req.Method, req.URL(s.baseURL), req.Headers, req.Body)
	resp, cerr := classify(req, raw, err)
	s.breaker.Record(!tripsBreaker(raw, cerr))
	return resp, cerr
}

// sign stamps req with a fresh timestamp and the authentication headers.
func (s *Signer) sign(req *core.Request) {
	req.SetTimestamp(clock.Timestamp(s.clock))
	signature := s.key.Sign(req.Timestamp, req.Method, req.Path, string(req.Body))

	req.SetHeader(HeaderAccessKey, s.apiKey).
		SetHeader(HeaderAccessSign, signature).
		SetHeader(HeaderAccessTimestamp, req.Timestamp)
}

func classify(req *core.Request, raw *httpClient.Response, err error) (*core.Response, error) {
	if err != nil {
		return nil, classifyTransport(req, raw, err)
	}
	if raw.StatusCode != http.StatusOK {
		return nil, statusError(raw.StatusCode, raw.Body)
	}

	headers := make(map[string]string, len(raw.Header))
	for k, v := range raw.Header {
		if len(v) > 0 {
			headers[k] = v[0]
		}
	}
	return &core.Response{
		StatusCode: raw.StatusCode,
		Body:       raw.Body,
		Headers:    headers,
	}, nil
}

func classifyTransport(req *core.Request, raw *httpClient.Response, err error) error {
	target := req.Method + " " + req.Path

	if errors.Is(err, httpClient.ErrReadBody) && raw != nil {
		if raw.StatusCode != http.StatusOK {
			return core.WrapError(core.ErrorTypeBadStatus,
				fmt.Sprintf("status %d: could not read error message", raw.StatusCode), err)
		}
		return core.WrapError(core.ErrorTypeBadParse, "response body", err)
	}
	if errors.Is(err, context.Canceled) {
		return core.WrapError(core.ErrorTypeUnknown, target+": request canceled", err)
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.As(err, &netErr) {
		return core.WrapError(core.ErrorTypeBadConnection, target, err)
	}
	return core.WrapError(core.ErrorTypeUnknown, target+" request to API", err)
}

func statusError(code int, body []byte) error {
	text := strings.TrimSpace(string(body))
	if text == "" {
		return core.NewError(core.ErrorTypeBadStatus, fmt.Sprintf("status %d", code))
	}
	return core.NewError(core.ErrorTypeBadStatus, fmt.Sprintf("status %d: %s", code, text))
}

// tripsBreaker reports whether an outcome counts as a venue failure.
// Client-side mistakes such as 4xx do not.
func tripsBreaker(raw *httpClient.Response, err error) bool {
	if core.IsBadConnection(err) {
		return true
	}
	return raw != nil && raw.StatusCode >= http.StatusInternalServerError
}
