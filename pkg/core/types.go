package core

import (
	"time"
)

// Balance is an amount denominated in a currency.
type Balance struct {
	Value    Decimal `json:"value"`
	Currency string  `json:"currency"`
}

// Account represents a single currency wallet of the authenticated user.
type Account struct {
	// UUID is the venue-assigned account identifier.
	UUID string `json:"uuid"`
	// Name is the user-visible account name.
	Name string `json:"name"`
	// Currency is the symbol the account holds, e.g. "BTC".
	Currency string `json:"currency"`
	// AvailableBalance can be traded or withdrawn.
	AvailableBalance Balance `json:"available_balance"`
	// Default is true for the user's primary account in this currency.
	Default bool `json:"default"`
	// Active is false once the account is deleted.
	Active    bool       `json:"active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at"`
	// Type is the account kind, e.g. "ACCOUNT_TYPE_CRYPTO".
	Type  string `json:"type"`
	Ready bool   `json:"ready"`
	// Hold is the amount reserved by open orders and pending transfers.
	Hold Balance `json:"hold"`
}

// ListedAccounts is one page of the account listing.
type ListedAccounts struct {
	Accounts []Account `json:"accounts"`
	HasNext  bool      `json:"has_next"`
	Cursor   string    `json:"cursor"`
	Size     int       `json:"size"`
}

// AccountResponse wraps a single account.
type AccountResponse struct {
	Account Account `json:"account"`
}

// Product describes a tradable pair.
type Product struct {
	ProductID                string      `json:"product_id"`
	Price                    Decimal     `json:"price"`
	PricePercentageChange24h Decimal     `json:"price_percentage_change_24h"`
	Volume24h                Decimal     `json:"volume_24h"`
	VolumePercentageChange24 Decimal     `json:"volume_percentage_change_24h"`
	BaseIncrement            Decimal     `json:"base_increment"`
	QuoteIncrement           Decimal     `json:"quote_increment"`
	QuoteMinSize             Decimal     `json:"quote_min_size"`
	QuoteMaxSize             Decimal     `json:"quote_max_size"`
	BaseMinSize              Decimal     `json:"base_min_size"`
	BaseMaxSize              Decimal     `json:"base_max_size"`
	BaseName                 string      `json:"base_name"`
	QuoteName                string      `json:"quote_name"`
	Watched                  bool        `json:"watched"`
	IsDisabled               bool        `json:"is_disabled"`
	New                      bool        `json:"new"`
	Status                   string      `json:"status"`
	CancelOnly               bool        `json:"cancel_only"`
	LimitOnly                bool        `json:"limit_only"`
	PostOnly                 bool        `json:"post_only"`
	TradingDisabled          bool        `json:"trading_disabled"`
	AuctionMode              bool        `json:"auction_mode"`
	ProductType              ProductType `json:"product_type"`
	QuoteCurrencyID          string      `json:"quote_currency_id"`
	BaseCurrencyID           string      `json:"base_currency_id"`
	BaseDisplaySymbol        string      `json:"base_display_symbol"`
	QuoteDisplaySymbol       string      `json:"quote_display_symbol"`
}

// ListedProducts is the product listing. It is offset-paginated, not cursor-paginated.
type ListedProducts struct {
	Products    []Product `json:"products"`
	NumProducts int       `json:"num_products"`
}

// FeeTier is the user's current pricing tier.
type FeeTier struct {
	PricingTier  string  `json:"pricing_tier"`
	USDFrom      Decimal `json:"usd_from"`
	USDTo        Decimal `json:"usd_to"`
	TakerFeeRate Decimal `json:"taker_fee_rate"`
	MakerFeeRate Decimal `json:"maker_fee_rate"`
}

// Rate is a single rate value, e.g. a margin rate.
type Rate struct {
	Value Decimal `json:"value"`
}

// GoodsAndServicesTax is reported for jurisdictions that levy GST.
type GoodsAndServicesTax struct {
	Rate Decimal `json:"rate"`
	Type string  `json:"type"`
}

// TransactionSummary reports volume and fee information for the user.
type TransactionSummary struct {
	TotalVolume             Decimal              `json:"total_volume"`
	TotalFees               Decimal              `json:"total_fees"`
	FeeTier                 FeeTier              `json:"fee_tier"`
	MarginRate              *Rate                `json:"margin_rate"`
	GoodsAndServicesTax     *GoodsAndServicesTax `json:"goods_and_services_tax"`
	AdvancedTradeOnlyVolume Decimal              `json:"advanced_trade_only_volume"`
	AdvancedTradeOnlyFees   Decimal              `json:"advanced_trade_only_fees"`
	CoinbaseProVolume       Decimal              `json:"coinbase_pro_volume"`
	CoinbaseProFees         Decimal              `json:"coinbase_pro_fees"`
}

// MarketIOC is an immediate-or-cancel market order configuration.
// Exactly one of QuoteSize and BaseSize is set.
type MarketIOC struct {
	QuoteSize string `json:"quote_size,omitempty" validate:"required_without=BaseSize,excluded_with=BaseSize,omitempty,numeric"`
	BaseSize  string `json:"base_size,omitempty" validate:"required_without=QuoteSize,excluded_with=QuoteSize,omitempty,numeric"`
}

// LimitGTC is a good-till-cancelled limit order configuration.
type LimitGTC struct {
	BaseSize   string `json:"base_size" validate:"required,numeric"`
	LimitPrice string `json:"limit_price" validate:"required,numeric"`
	PostOnly   bool   `json:"post_only"`
}

// LimitGTD is a good-till-date limit order configuration.
type LimitGTD struct {
	BaseSize   string    `json:"base_size" validate:"required,numeric"`
	LimitPrice string    `json:"limit_price" validate:"required,numeric"`
	EndTime    time.Time `json:"end_time"`
	PostOnly   bool      `json:"post_only"`
}

// StopLimitGTC is a good-till-cancelled stop-limit order configuration.
type StopLimitGTC struct {
	BaseSize      string `json:"base_size" validate:"required,numeric"`
	LimitPrice    string `json:"limit_price" validate:"required,numeric"`
	StopPrice     string `json:"stop_price" validate:"required,numeric"`
	StopDirection string `json:"stop_direction" validate:"required,oneof=STOP_DIRECTION_STOP_UP STOP_DIRECTION_STOP_DOWN"`
}

// OrderConfiguration selects the order type. Exactly one field is set.
type OrderConfiguration struct {
	MarketIOC    *MarketIOC    `json:"market_market_ioc,omitempty"`
	LimitGTC     *LimitGTC     `json:"limit_limit_gtc,omitempty"`
	LimitGTD     *LimitGTD     `json:"limit_limit_gtd,omitempty"`
	StopLimitGTC *StopLimitGTC `json:"stop_limit_stop_limit_gtc,omitempty"`
}

// Count returns how many order types are set.
func (c *OrderConfiguration) Count() int {
	n := 0
	if c.MarketIOC != nil {
		n++
	}
	if c.LimitGTC != nil {
		n++
	}
	if c.LimitGTD != nil {
		n++
	}
	if c.StopLimitGTC != nil {
		n++
	}
	return n
}

// CreateOrderRequest is the body of an order placement.
// ClientOrderID is generated when empty.
type CreateOrderRequest struct {
	ClientOrderID      string             `json:"client_order_id"`
	ProductID          string             `json:"product_id" validate:"required"`
	Side               OrderSide          `json:"side" validate:"required"`
	OrderConfiguration OrderConfiguration `json:"order_configuration"`
}

// OrderSuccess is the acknowledgment of an accepted order.
type OrderSuccess struct {
	OrderID       string    `json:"order_id"`
	ProductID     string    `json:"product_id"`
	Side          OrderSide `json:"side"`
	ClientOrderID string    `json:"client_order_id"`
}

// OrderFailure describes why an order was rejected.
type OrderFailure struct {
	Error                 string `json:"error"`
	Message               string `json:"message"`
	ErrorDetails          string `json:"error_details"`
	PreviewFailureReason  string `json:"preview_failure_reason"`
	NewOrderFailureReason string `json:"new_order_failure_reason"`
}

// CreateOrderResponse is the reply to an order placement.
// A rejected order still arrives with HTTP 200 and Success false.
type CreateOrderResponse struct {
	Success         bool          `json:"success"`
	FailureReason   string        `json:"failure_reason"`
	OrderID         string        `json:"order_id"`
	SuccessResponse *OrderSuccess `json:"success_response"`
	ErrorResponse   *OrderFailure `json:"error_response"`
}

// CancelOrdersRequest is the body of a batch cancel.
type CancelOrdersRequest struct {
	OrderIDs []string `json:"order_ids"`
}

// CancelOrderResult is the per-order outcome of a batch cancel.
type CancelOrderResult struct {
	Success       bool   `json:"success"`
	FailureReason string `json:"failure_reason"`
	OrderID       string `json:"order_id"`
}

// CancelOrdersResponse wraps the batch cancel results.
type CancelOrdersResponse struct {
	Results []CancelOrderResult `json:"results"`
}

// Order is a historical order record.
type Order struct {
	OrderID            string             `json:"order_id"`
	ProductID          string             `json:"product_id"`
	UserID             string             `json:"user_id"`
	OrderConfiguration OrderConfiguration `json:"order_configuration"`
	Side               OrderSide          `json:"side"`
	ClientOrderID      string             `json:"client_order_id"`
	Status             OrderStatus        `json:"status"`
	TimeInForce        string             `json:"time_in_force"`
	CreatedTime        time.Time          `json:"created_time"`
	CompletionPct      Decimal            `json:"completion_percentage"`
	FilledSize         Decimal            `json:"filled_size"`
	AverageFilledPrice Decimal            `json:"average_filled_price"`
	Fee                Decimal            `json:"fee"`
	NumberOfFills      Decimal            `json:"number_of_fills"`
	FilledValue        Decimal            `json:"filled_value"`
	PendingCancel      bool               `json:"pending_cancel"`
	SizeInQuote        bool               `json:"size_in_quote"`
	TotalFees          Decimal            `json:"total_fees"`
	SizeInclusiveOfFee bool               `json:"size_inclusive_of_fees"`
	TotalValueAfterFee Decimal            `json:"total_value_after_fees"`
	TriggerStatus      string             `json:"trigger_status"`
	OrderType          string             `json:"order_type"`
	RejectReason       string             `json:"reject_reason"`
	Settled            bool               `json:"settled"`
	ProductType        ProductType        `json:"product_type"`
	RejectMessage      string             `json:"reject_message"`
	CancelMessage      string             `json:"cancel_message"`
}

// OrderResponse wraps a single historical order.
type OrderResponse struct {
	Order Order `json:"order"`
}

// ListedOrders is one page of historical orders.
type ListedOrders struct {
	Orders   []Order `json:"orders"`
	Sequence string  `json:"sequence"`
	HasNext  bool    `json:"has_next"`
	Cursor   string  `json:"cursor"`
}

// Fill is a single execution against an order.
type Fill struct {
	EntryID            string    `json:"entry_id"`
	TradeID            string    `json:"trade_id"`
	OrderID            string    `json:"order_id"`
	TradeTime          time.Time `json:"trade_time"`
	TradeType          string    `json:"trade_type"`
	Price              Decimal   `json:"price"`
	Size               Decimal   `json:"size"`
	Commission         Decimal   `json:"commission"`
	ProductID          string    `json:"product_id"`
	SequenceTimestamp  time.Time `json:"sequence_timestamp"`
	LiquidityIndicator string    `json:"liquidity_indicator"`
	SizeInQuote        bool      `json:"size_in_quote"`
	UserID             string    `json:"user_id"`
	Side               OrderSide `json:"side"`
}

// ListedFills is one page of fills.
type ListedFills struct {
	Fills  []Fill `json:"fills"`
	Cursor string `json:"cursor"`
}
