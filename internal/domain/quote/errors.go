package quote

import (
	"errors"
	"fmt"
)

// ErrUnavailable is the match target for all quote failures. The market price
// source is network-backed and unreliable; missing, malformed and non-positive
// quotes all surface as this error.
var ErrUnavailable = errors.New("quote unavailable")

// UnavailableError carries the symbol and cause of a failed quote fetch.
type UnavailableError struct {
	Symbol string
	Err    error // underlying cause, may be nil (e.g. non-positive quote)
}

func (e *UnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("quote unavailable for %s: %v", e.Symbol, e.Err)
	}
	return fmt.Sprintf("quote unavailable for %s", e.Symbol)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrUnavailable) match any UnavailableError.
func (e *UnavailableError) Is(target error) bool {
	return target == ErrUnavailable
}
