// Package ledger implements the order execution and portfolio bookkeeping
// core: order validation, brokerage, weighted-average cost basis, cash
// accounting, and portfolio valuation. Business rules live here once;
// persistence is behind the Store contract so the same rules drive both the
// in-memory and the relational backends.
package ledger

import "time"

// InitialCash is the virtual cash balance every portfolio starts with,
// and the balance a reset returns to.
const InitialCash = 100000

// Side is the direction of an order.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// OrderType distinguishes market orders from limit orders. Limit orders
// execute immediately at the limit price; there is no resting order book.
type OrderType string

const (
	OrderTypeMarket OrderType = "MARKET"
	OrderTypeLimit  OrderType = "LIMIT"
)

// OrderStatus is the lifecycle state of an order. Orders execute
// synchronously at submission, so every persisted order is EXECUTED;
// PENDING and CANCELLED exist for wire compatibility.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusExecuted  OrderStatus = "EXECUTED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// Position is an open holding of a single symbol. At most one position
// exists per (user, symbol). InvestedValue equals AvgPrice × Quantity
// within rounding tolerance whenever Quantity > 0.
type Position struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Quantity      int64   `json:"quantity"`
	AvgPrice      float64 `json:"avg_price"`
	InvestedValue float64 `json:"invested_value"`
	CurrentPrice  float64 `json:"current_price"`
}

// Order is one entry in the append-only order log. Orders are never
// mutated or deleted except by a full portfolio reset.
type Order struct {
	ID          string      `json:"id"`
	Symbol      string      `json:"symbol"`
	Name        string      `json:"name"`
	Side        Side        `json:"type"`
	Type        OrderType   `json:"order_type"`
	Quantity    int64       `json:"quantity"`
	Price       float64     `json:"price"`
	Status      OrderStatus `json:"status"`
	Timestamp   time.Time   `json:"timestamp"`
	Brokerage   float64     `json:"brokerage"`
	TotalAmount float64     `json:"total_amount"`
}

// OrderRequest describes an order to execute. For market orders Price is
// the current market price, already resolved by the caller; for limit
// orders it is the limit price the order executes at.
type OrderRequest struct {
	Symbol   string
	Name     string
	Side     Side
	Type     OrderType
	Quantity int64
	Price    float64
}

// Confirmation is returned for a successfully executed order.
type Confirmation struct {
	OrderID       string  `json:"order_id"`
	ExecutedPrice float64 `json:"executed_price"`
	TotalAmount   float64 `json:"total_amount"`
}
