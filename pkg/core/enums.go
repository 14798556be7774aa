package core

import (
	"strings"
)

func unquote(data []byte) string {
	return strings.ToUpper(strings.Trim(string(data), `"`))
}

// ProductType represents the market a product trades on.
type ProductType int

// Product type constants define the available market categories.
const (
	// ProductTypeUnknown is used for unset or unrecognized values.
	ProductTypeUnknown ProductType = iota
	// ProductTypeSpot indicates spot trading where assets are exchanged immediately.
	ProductTypeSpot
	// ProductTypeFuture indicates futures contracts.
	ProductTypeFuture
)

// String returns the wire representation ("SPOT", "FUTURE"), or "" when unknown.
func (p ProductType) String() string {
	if p < ProductTypeUnknown || p > ProductTypeFuture {
		return ""
	}
	return [...]string{"", "SPOT", "FUTURE"}[p]
}

// MarshalJSON implements json.Marshaler for ProductType.
func (p ProductType) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler for ProductType.
// Unrecognized values decode to ProductTypeUnknown.
func (p *ProductType) UnmarshalJSON(data []byte) error {
	switch unquote(data) {
	case "SPOT":
		*p = ProductTypeSpot
	case "FUTURE":
		*p = ProductTypeFuture
	default:
		*p = ProductTypeUnknown
	}
	return nil
}

// OrderSide represents the direction of an order.
type OrderSide int

// Order side constants define the direction of a trade.
const (
	// SideUnknown is used for unset or unrecognized values.
	SideUnknown OrderSide = iota
	// SideBuy indicates an order to purchase an asset.
	SideBuy
	// SideSell indicates an order to sell an asset.
	SideSell
)

// String returns the wire representation ("BUY" or "SELL").
func (s OrderSide) String() string {
	if s < SideUnknown || s > SideSell {
		return ""
	}
	return [...]string{"", "BUY", "SELL"}[s]
}

// MarshalJSON implements json.Marshaler for OrderSide.
func (s OrderSide) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler for OrderSide.
// It accepts both uppercase and lowercase formats.
func (s *OrderSide) UnmarshalJSON(data []byte) error {
	switch unquote(data) {
	case "BUY":
		*s = SideBuy
	case "SELL":
		*s = SideSell
	default:
		*s = SideUnknown
	}
	return nil
}

// OrderStatus represents the current state of an order.
type OrderStatus int

// Order status constants follow the venue's order lifecycle.
const (
	StatusUnknown OrderStatus = iota
	StatusPending
	StatusOpen
	StatusFilled
	StatusCancelled
	StatusExpired
	StatusFailed
	StatusQueued
	StatusCancelQueued
)

var orderStatusNames = [...]string{
	"UNKNOWN_ORDER_STATUS",
	"PENDING",
	"OPEN",
	"FILLED",
	"CANCELLED",
	"EXPIRED",
	"FAILED",
	"QUEUED",
	"CANCEL_QUEUED",
}

// String returns the wire representation of the order status.
func (s OrderStatus) String() string {
	if s < StatusUnknown || int(s) >= len(orderStatusNames) {
		return orderStatusNames[StatusUnknown]
	}
	return orderStatusNames[s]
}

// IsTerminal returns true if the order is in a terminal state (no further changes possible).
func (s OrderStatus) IsTerminal() bool {
	return s == StatusFilled || s == StatusCancelled || s == StatusExpired || s == StatusFailed
}

// MarshalJSON implements json.Marshaler for OrderStatus.
func (s OrderStatus) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler for OrderStatus.
func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	name := unquote(data)
	for i, n := range orderStatusNames {
		if n == name {
			*s = OrderStatus(i)
			return nil
		}
	}
	*s = StatusUnknown
	return nil
}
