package order

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order Side
const (
	SideBuy  = "BUY"
	SideSell = "SELL"
)

// Order represents a committed buy or sell order. Orders are immutable once
// appended to the ledger; the executed price is fixed at commit time from the
// market quote.
type Order struct {
	OrderID   uuid.UUID       `json:"order_id"`   // system-generated identifier
	Symbol    string          `json:"symbol"`     // catalog instrument symbol
	Name      string          `json:"name"`       // company name at commit time
	Side      string          `json:"side"`       // BUY | SELL
	Volume    int64           `json:"volume"`     // shares, > 0
	Price     decimal.Decimal `json:"price"`      // executed price per share, > 0
	CreatedTS time.Time       `json:"created_ts"` // commit timestamp
}

// ListFilter restricts ledger listings. Nil fields match everything.
type ListFilter struct {
	Side   *string // BUY or SELL
	Symbol *string // exact symbol match
	Limit  int     // 0 = no limit
}

// Holding is the aggregated net position for one symbol, restricted to
// strictly positive sums.
type Holding struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
}

// PortfolioItem is one priced holding in the portfolio view.
// Priced is false when the market quote for the symbol failed; such items
// carry a zero price and market value and do not contribute to the total.
type PortfolioItem struct {
	Symbol       string          `json:"symbol"`
	Name         string          `json:"name"`
	Quantity     int64           `json:"quantity"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	MarketValue  decimal.Decimal `json:"market_value"`
	Priced       bool            `json:"priced"`
}

// Portfolio is the aggregated, priced view of all positive holdings.
type Portfolio struct {
	Items      []PortfolioItem `json:"items"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// NormalizeSymbol trims whitespace and uppercases a raw symbol.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// ValidateSide reports whether side is BUY or SELL.
func ValidateSide(side string) bool {
	return side == SideBuy || side == SideSell
}

// Validate checks the filter's side value.
func (f *ListFilter) Validate() error {
	if f.Side != nil && !ValidateSide(*f.Side) {
		return ErrInvalidSide
	}
	return nil
}
