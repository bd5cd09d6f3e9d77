package quote

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote is a point-in-time price returned by the market price source.
type Quote struct {
	Symbol string          `json:"symbol"`
	Price  decimal.Decimal `json:"price"` // always > 0; a non-positive quote is an error, never a Quote
	TS     time.Time       `json:"ts"`    // fetch time
}
