package trading

import (
	"context"
	"fmt"

	"github.com/wonny/papertrade/internal/domain/order"
)

// CurrentHoldings derives the net position for one symbol by folding the
// full order history: +volume for BUY, -volume for SELL. Holdings are never
// cached; the ledger is the single source of truth.
func (s *Service) CurrentHoldings(ctx context.Context, rawSymbol string) (int64, error) {
	symbol := order.NormalizeSymbol(rawSymbol)
	if symbol == "" {
		return 0, order.ErrEmptySymbol
	}

	orders, err := s.ledger.List(ctx, order.ListFilter{Symbol: &symbol})
	if err != nil {
		return 0, fmt.Errorf("list orders for %s: %w", symbol, err)
	}

	var holdings int64
	for _, o := range orders {
		if o.Side == order.SideBuy {
			holdings += o.Volume
		} else {
			holdings -= o.Volume
		}
	}

	return holdings, nil
}

// AllHoldings returns the net position per symbol, restricted to strictly
// positive sums. Liquidated symbols are excluded from portfolio views.
func (s *Service) AllHoldings(ctx context.Context) ([]order.Holding, error) {
	return s.ledger.AllHoldings(ctx)
}
