package stock

import (
	"time"

	"github.com/google/uuid"
)

// Stock represents a tradeable instrument in the catalog.
// Maps to market.stocks table.
type Stock struct {
	ID          uuid.UUID `json:"id"`
	Symbol      string    `json:"symbol"`       // ticker, unique, uppercase
	CompanyName string    `json:"company_name"` // full company name
	Exchange    string    `json:"exchange"`     // NYSE | NASDAQ | AMEX | LSE | TSE
	Industry    string    `json:"industry"`
	CreatedTS   time.Time `json:"created_ts"`
	UpdatedTS   time.Time `json:"updated_ts"`
}

// ListFilter represents filter options for listing stocks
type ListFilter struct {
	Exchange string // exact match, empty = all
	Industry string // exact match, empty = all
	Search   string // symbol or company name, partial match
	Page     int    // 1-based
	Limit    int    // default 20, max 100
}

// ListResult represents paginated list result
type ListResult struct {
	Stocks     []Stock
	TotalCount int
	Page       int
	Limit      int
}

// ValidateSymbol validates ticker format (1-10 uppercase letters).
func ValidateSymbol(symbol string) bool {
	if len(symbol) < 1 || len(symbol) > 10 {
		return false
	}
	for _, c := range symbol {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}

// ValidateExchange validates exchange value
func ValidateExchange(exchange string) bool {
	switch exchange {
	case "NYSE", "NASDAQ", "AMEX", "LSE", "TSE":
		return true
	}
	return false
}

// Normalize normalizes and validates ListFilter
func (f *ListFilter) Normalize() error {
	if f.Exchange != "" && !ValidateExchange(f.Exchange) {
		return ErrInvalidExchange
	}

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}

	return nil
}
