package http

import (
	"bytes"
	"context"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, opts ...Option) *Client {
	t.Helper()
	c, err := NewClient(&Config{Timeout: 2 * time.Second}, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestNewClient_InvalidConfig(t *testing.T) {
	_, err := NewClient(&Config{Timeout: 0})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestClient_Do_Get(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/x", r.URL.Path)
		assert.Equal(t, "limit=2", r.URL.RawQuery)
		assert.Equal(t, "v", r.Header.Get("X-Test"))
		w.Header().Set("X-Reply", "1")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	c := newTestClient(t)
	resp, err := c.Do(context.Background(), "GET", server.URL+"/x?limit=2", map[string]string{"X-Test": "v"}, nil)
	require.NoError(t, err)

	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, `{"ok":true}`, string(resp.Body))
	assert.Equal(t, "1", resp.Header.Get("X-Reply"))
}

func TestClient_Do_PostBodyVerbatim(t *testing.T) {
	body := []byte(`{"b":2,"a":1}`)
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		got, _ := io.ReadAll(r.Body)
		assert.Equal(t, body, got)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(nethttp.StatusCreated)
	}))
	defer server.Close()

	c := newTestClient(t)
	resp, err := c.Do(context.Background(), "POST", server.URL, map[string]string{"Content-Type": "application/json"}, body)
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)
	assert.Empty(t, resp.Body)
}

func TestClient_Do_NoRetry(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		calls.Add(1)
		w.WriteHeader(nethttp.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := newTestClient(t)
	resp, err := c.Do(context.Background(), "GET", server.URL, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 503, resp.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_Do_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {}))
	url := server.URL
	server.Close()

	c := newTestClient(t)
	resp, err := c.Do(context.Background(), "GET", url, nil, nil)
	assert.Error(t, err)
	assert.Nil(t, resp)
}

func TestClient_Do_Closed(t *testing.T) {
	c, err := NewClient(&Config{Timeout: time.Second})
	require.NoError(t, err)

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	_, err = c.Do(context.Background(), "GET", "http://127.0.0.1:1", nil, nil)
	assert.ErrorIs(t, err, ErrClosed)
}

type failingBody struct{}

func (failingBody) Read([]byte) (int, error) { return 0, io.ErrUnexpectedEOF }
func (failingBody) Close() error             { return nil }

type roundTripFunc func(*nethttp.Request) (*nethttp.Response, error)

func (f roundTripFunc) RoundTrip(r *nethttp.Request) (*nethttp.Response, error) { return f(r) }

func TestClient_Do_ReadBodyError(t *testing.T) {
	rt := roundTripFunc(func(r *nethttp.Request) (*nethttp.Response, error) {
		return &nethttp.Response{
			StatusCode: 500,
			Header:     nethttp.Header{},
			Body:       failingBody{},
			Request:    r,
		}, nil
	})

	c := newTestClient(t, WithTransport(rt))
	resp, err := c.Do(context.Background(), "GET", "http://venue.invalid/x", nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReadBody)
	require.NotNil(t, resp)
	assert.Equal(t, 500, resp.StatusCode)
}

func TestClient_Logging(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Write([]byte("{}"))
	}))
	defer server.Close()

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	c := newTestClient(t, WithLogger(logger))
	_, err := c.Do(context.Background(), "GET", server.URL+"/logged", map[string]string{"CB-ACCESS-SIGN": "deadbeef"}, nil)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"message":"http request"`)
	assert.Contains(t, out, `"message":"http response"`)
	assert.Contains(t, out, "/logged")
	assert.False(t, strings.Contains(out, "deadbeef"), "headers must not be logged")
}
