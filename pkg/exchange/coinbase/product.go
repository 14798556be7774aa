package coinbase

import (
	"context"
	"net/url"

	"cbadv/pkg/core"
	"cbadv/pkg/exchange"
)

const productsResource = resourceRoot + "/products"

// ListProductsParams filters the product listing.
type ListProductsParams struct {
	Limit       int
	Offset      int
	ProductType core.ProductType
	ProductIDs  []string
}

// Encode renders the params as a query string, e.g. "limit=10&product_type=SPOT".
func (p *ListProductsParams) Encode() string {
	if p == nil {
		return ""
	}
	return core.NewParams().
		SetInt("limit", p.Limit).
		SetInt("offset", p.Offset).
		Set("product_type", p.ProductType.String()).
		SetAll("product_ids", p.ProductIDs).
		Encode()
}

// ProductAPI reads tradable products.
type ProductAPI struct {
	transport exchange.Transport
}

// NewProductAPI creates a ProductAPI that calls through transport.
func NewProductAPI(transport exchange.Transport) *ProductAPI {
	return &ProductAPI{transport: transport}
}

// Get fetches one product, e.g. "BTC-USD".
func (p *ProductAPI) Get(ctx context.Context, productID string) (*core.Product, error) {
	resp, err := p.transport.Get(ctx, productsResource+"/"+url.PathEscape(productID), "")
	if err != nil {
		return nil, err
	}

	var out core.Product
	if err := resp.Decode(&out, "product object"); err != nil {
		return nil, err
	}
	return &out, nil
}

// List fetches products matching params.
func (p *ProductAPI) List(ctx context.Context, params *ListProductsParams) (*core.ListedProducts, error) {
	resp, err := p.transport.Get(ctx, productsResource, params.Encode())
	if err != nil {
		return nil, err
	}

	var out core.ListedProducts
	if err := resp.Decode(&out, "products listing"); err != nil {
		return nil, err
	}
	return &out, nil
}
