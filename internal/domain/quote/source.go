package quote

import "context"

// Source fetches current market prices. Implementations must treat missing
// and non-positive prices as failures and return an UnavailableError.
type Source interface {
	Quote(ctx context.Context, symbol string) (*Quote, error)
}
