// Package exchange holds the venue-independent pieces of the REST client:
// the transport contract that API modules call through and cursor pagination.
package exchange

import (
	"context"

	"cbadv/pkg/core"
)

// Transport issues authenticated REST calls.
//
// resource is the path beginning with "/", signed exactly as given.
// query is an encoded query string without "?" and is not signed.
// A nil error means the server answered HTTP 200; every failure is a *core.Error.
type Transport interface {
	Get(ctx context.Context, resource, query string) (*core.Response, error)
	Post(ctx context.Context, resource, query string, body any) (*core.Response, error)
}

// ChannelSigner signs streaming channel subscriptions.
type ChannelSigner interface {
	SignChannel(timestamp, channel string, ids []string) string
}
