package coinbase

import (
	"context"
	"time"

	"cbadv/pkg/core"
	"cbadv/pkg/exchange"
)

const transactionSummaryResource = resourceRoot + "/transaction_summary"

// TransactionSummaryParams narrows the fee summary.
type TransactionSummaryParams struct {
	StartDate          time.Time
	EndDate            time.Time
	UserNativeCurrency string
	ProductType        core.ProductType
}

// Encode renders the params as a query string, e.g. "user_native_currency=USD&product_type=SPOT".
func (p *TransactionSummaryParams) Encode() string {
	if p == nil {
		return ""
	}
	params := core.NewParams()
	if !p.StartDate.IsZero() {
		params.Set("start_date", p.StartDate.UTC().Format(time.RFC3339))
	}
	if !p.EndDate.IsZero() {
		params.Set("end_date", p.EndDate.UTC().Format(time.RFC3339))
	}
	return params.
		Set("user_native_currency", p.UserNativeCurrency).
		Set("product_type", p.ProductType.String()).
		Encode()
}

// FeeAPI reads the user's fee tier and trading volume.
type FeeAPI struct {
	transport exchange.Transport
}

// NewFeeAPI creates a FeeAPI that calls through transport.
func NewFeeAPI(transport exchange.Transport) *FeeAPI {
	return &FeeAPI{transport: transport}
}

// Get fetches the transaction summary.
func (f *FeeAPI) Get(ctx context.Context, params *TransactionSummaryParams) (*core.TransactionSummary, error) {
	resp, err := f.transport.Get(ctx, transactionSummaryResource, params.Encode())
	if err != nil {
		return nil, err
	}

	var out core.TransactionSummary
	if err := resp.Decode(&out, "transaction summary"); err != nil {
		return nil, err
	}
	return &out, nil
}
