package coinbase

import (
	"context"
	"fmt"
	"iter"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"cbadv/pkg/core"
	"cbadv/pkg/exchange"
)

const (
	ordersResource          = resourceRoot + "/orders"
	batchCancelResource     = ordersResource + "/batch_cancel"
	historicalResource      = ordersResource + "/historical"
	historicalBatchResource = historicalResource + "/batch"
	fillsResource           = historicalResource + "/fills"
)

var validate = validator.New()

// ListOrdersParams filters historical orders.
type ListOrdersParams struct {
	ProductID   string
	OrderStatus []core.OrderStatus
	Side        core.OrderSide
	StartDate   time.Time
	EndDate     time.Time
	Limit       int
	Cursor      string
}

// Encode renders the params as a query string, e.g. "product_id=BTC-USD&order_status=OPEN".
func (p *ListOrdersParams) Encode() string {
	if p == nil {
		return ""
	}
	params := core.NewParams().Set("product_id", p.ProductID)
	for _, s := range p.OrderStatus {
		params.Set("order_status", s.String())
	}
	params.Set("order_side", p.Side.String())
	if !p.StartDate.IsZero() {
		params.Set("start_date", p.StartDate.UTC().Format(time.RFC3339))
	}
	if !p.EndDate.IsZero() {
		params.Set("end_date", p.EndDate.UTC().Format(time.RFC3339))
	}
	return params.
		SetInt("limit", p.Limit).
		Set("cursor", p.Cursor).
		Encode()
}

// ListFillsParams filters fills.
type ListFillsParams struct {
	OrderID   string
	ProductID string
	Limit     int
	Cursor    string
}

// Encode renders the params as a query string, e.g. "order_id=abc&limit=10".
func (p *ListFillsParams) Encode() string {
	if p == nil {
		return ""
	}
	return core.NewParams().
		Set("order_id", p.OrderID).
		Set("product_id", p.ProductID).
		SetInt("limit", p.Limit).
		Set("cursor", p.Cursor).
		Encode()
}

// OrderAPI places, cancels and reads orders.
type OrderAPI struct {
	transport exchange.Transport
	maxPages  int
}

// NewOrderAPI creates an OrderAPI. maxPages bounds lookups by client order id; zero is unbounded.
func NewOrderAPI(transport exchange.Transport, maxPages int) *OrderAPI {
	return &OrderAPI{transport: transport, maxPages: maxPages}
}

// Create validates and places an order. A random client_order_id is assigned
// when req leaves it empty; req itself is not modified.
//
// A rejected order is not an error: check CreateOrderResponse.Success.
func (o *OrderAPI) Create(ctx context.Context, req *core.CreateOrderRequest) (*core.CreateOrderResponse, error) {
	if req == nil {
		return nil, core.NewError(core.ErrorTypeNothingToDo, "no order request")
	}
	if err := validate.Struct(req); err != nil {
		return nil, core.WrapError(core.ErrorTypeBadParse, "order request: "+err.Error(), err)
	}
	if n := req.OrderConfiguration.Count(); n != 1 {
		return nil, core.NewError(core.ErrorTypeBadParse, fmt.Sprintf("order request: %d order configurations, want 1", n))
	}
	if gtd := req.OrderConfiguration.LimitGTD; gtd != nil && gtd.EndTime.IsZero() {
		return nil, core.NewError(core.ErrorTypeBadParse, "order request: limit_limit_gtd needs end_time")
	}

	body := *req
	if body.ClientOrderID == "" {
		body.ClientOrderID = uuid.NewString()
	}

	resp, err := o.transport.Post(ctx, ordersResource, "", &body)
	if err != nil {
		return nil, err
	}

	var out core.CreateOrderResponse
	if err := resp.Decode(&out, "order creation"); err != nil {
		return nil, err
	}
	if out.SuccessResponse != nil && out.SuccessResponse.ClientOrderID == "" {
		out.SuccessResponse.ClientOrderID = body.ClientOrderID
	}
	return &out, nil
}

// Cancel requests cancellation of orderIDs. Per-order outcomes are in the results.
func (o *OrderAPI) Cancel(ctx context.Context, orderIDs []string) ([]core.CancelOrderResult, error) {
	if len(orderIDs) == 0 {
		return nil, core.NewError(core.ErrorTypeNothingToDo, "no order ids to cancel")
	}

	resp, err := o.transport.Post(ctx, batchCancelResource, "", &core.CancelOrdersRequest{OrderIDs: orderIDs})
	if err != nil {
		return nil, err
	}

	var out core.CancelOrdersResponse
	if err := resp.Decode(&out, "cancel results"); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// Get fetches one historical order by its venue id.
func (o *OrderAPI) Get(ctx context.Context, orderID string) (*core.Order, error) {
	resp, err := o.transport.Get(ctx, historicalResource+"/"+url.PathEscape(orderID), "")
	if err != nil {
		return nil, err
	}

	var out core.OrderResponse
	if err := resp.Decode(&out, "order object"); err != nil {
		return nil, err
	}
	return &out.Order, nil
}

// List fetches one page of historical orders.
func (o *OrderAPI) List(ctx context.Context, params *ListOrdersParams) (*core.ListedOrders, error) {
	resp, err := o.transport.Get(ctx, historicalBatchResource, params.Encode())
	if err != nil {
		return nil, err
	}

	var out core.ListedOrders
	if err := resp.Decode(&out, "orders listing"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (o *OrderAPI) pages(params *ListOrdersParams) exchange.ListFunc[core.Order] {
	base := ListOrdersParams{}
	if params != nil {
		base = *params
	}
	return func(ctx context.Context, cursor string) (*exchange.Page[core.Order], error) {
		p := base
		if cursor != "" {
			p.Cursor = cursor
		}
		listed, err := o.List(ctx, &p)
		if err != nil {
			return nil, err
		}
		return &exchange.Page[core.Order]{
			Items:   listed.Orders,
			HasNext: listed.HasNext,
			Cursor:  listed.Cursor,
		}, nil
	}
}

// GetByClientOrderID searches historical orders page by page for clientOrderID.
func (o *OrderAPI) GetByClientOrderID(ctx context.Context, clientOrderID string, params *ListOrdersParams) (*core.Order, error) {
	return exchange.FindFirst(ctx, o.pages(params),
		func(ord *core.Order) bool { return ord.ClientOrderID == clientOrderID },
		exchange.WithMaxPages(o.maxPages))
}

// All iterates historical orders across pages.
func (o *OrderAPI) All(ctx context.Context, params *ListOrdersParams) iter.Seq2[*core.Order, error] {
	return exchange.All(ctx, o.pages(params), exchange.WithMaxPages(o.maxPages))
}

// Fills fetches one page of fills.
func (o *OrderAPI) Fills(ctx context.Context, params *ListFillsParams) (*core.ListedFills, error) {
	resp, err := o.transport.Get(ctx, fillsResource, params.Encode())
	if err != nil {
		return nil, err
	}

	var out core.ListedFills
	if err := resp.Decode(&out, "fills listing"); err != nil {
		return nil, err
	}
	return &out, nil
}

// AllFills iterates fills across pages. The fills listing has no has_next
// flag; an empty cursor marks the last page.
func (o *OrderAPI) AllFills(ctx context.Context, params *ListFillsParams) iter.Seq2[*core.Fill, error] {
	base := ListFillsParams{}
	if params != nil {
		base = *params
	}
	list := func(ctx context.Context, cursor string) (*exchange.Page[core.Fill], error) {
		p := base
		if cursor != "" {
			p.Cursor = cursor
		}
		listed, err := o.Fills(ctx, &p)
		if err != nil {
			return nil, err
		}
		return &exchange.Page[core.Fill]{
			Items:   listed.Fills,
			HasNext: listed.Cursor != "",
			Cursor:  listed.Cursor,
		}, nil
	}
	return exchange.All(ctx, list, exchange.WithMaxPages(o.maxPages))
}
