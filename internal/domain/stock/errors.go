package stock

import "errors"

var (
	// Validation errors
	ErrInvalidSymbol   = errors.New("invalid stock symbol format")
	ErrInvalidExchange = errors.New("invalid exchange value")
	ErrEmptyName       = errors.New("company name must not be empty")

	// Data errors
	ErrStockNotFound   = errors.New("stock not found")
	ErrDuplicateSymbol = errors.New("stock with this symbol already exists")
)
