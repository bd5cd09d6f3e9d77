package order

import (
	"context"

	"github.com/google/uuid"
)

// Ledger is the append-only store of committed orders. It is the sole source
// of truth for holdings; it never rejects an append on domain grounds
// (validation happens in the placement engine before Append is invoked).
type Ledger interface {
	// Append durably persists a committed order.
	Append(ctx context.Context, o *Order) error

	// Get returns an order by ID, or ErrOrderNotFound.
	Get(ctx context.Context, id uuid.UUID) (*Order, error)

	// List returns orders matching the filter, most recent first.
	List(ctx context.Context, filter ListFilter) ([]*Order, error)

	// AllHoldings returns the net position per symbol, restricted to symbols
	// whose computed sum is strictly positive.
	AllHoldings(ctx context.Context) ([]Holding, error)
}
