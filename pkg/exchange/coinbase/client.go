package coinbase

import (
	"fmt"

	"cbadv/pkg/core"
)

// Client groups the API modules around a single shared Signer.
type Client struct {
	Signer   *Signer
	Accounts *AccountAPI
	Products *ProductAPI
	Fees     *FeeAPI
	Orders   *OrderAPI
}

// New creates a Signer from config and hands it to every API module.
func New(config *core.Config, opts ...Option) (*Client, error) {
	signer, err := NewSigner(config, opts...)
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}

	return &Client{
		Signer:   signer,
		Accounts: NewAccountAPI(signer, config.MaxPages),
		Products: NewProductAPI(signer),
		Fees:     NewFeeAPI(signer),
		Orders:   NewOrderAPI(signer, config.MaxPages),
	}, nil
}

// Close releases the shared HTTP client.
func (c *Client) Close() error {
	return c.Signer.Close()
}
