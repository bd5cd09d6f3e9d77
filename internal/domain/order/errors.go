package order

import (
	"errors"
	"fmt"
)

var (
	// Validation errors
	ErrEmptySymbol   = errors.New("symbol must not be empty")
	ErrInvalidSide   = errors.New("side must be BUY or SELL")
	ErrInvalidVolume = errors.New("volume must be a positive integer")

	// Data errors
	ErrOrderNotFound = errors.New("order not found")
)

// InsufficientHoldingsError is returned when a SELL order requests more
// shares than the current holdings for the symbol.
type InsufficientHoldingsError struct {
	Symbol    string
	Requested int64
	Available int64
}

func (e *InsufficientHoldingsError) Error() string {
	return fmt.Sprintf("insufficient holdings for %s: requested %d, available %d",
		e.Symbol, e.Requested, e.Available)
}
