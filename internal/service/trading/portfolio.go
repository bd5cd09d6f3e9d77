package trading

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/wonny/papertrade/internal/domain/order"
)

// CurrentPortfolio prices every positive holding against a live market quote
// and totals the market values.
//
// Partial-failure policy: a symbol whose quote fails stays in the portfolio
// with a zero price and market value and Priced=false; the total sums only
// priced items. The view is recomputed on every call.
func (s *Service) CurrentPortfolio(ctx context.Context) (*order.Portfolio, error) {
	holdings, err := s.ledger.AllHoldings(ctx)
	if err != nil {
		return nil, fmt.Errorf("load holdings: %w", err)
	}

	items := make([]order.PortfolioItem, 0, len(holdings))
	total := decimal.Zero

	for _, h := range holdings {
		item := order.PortfolioItem{
			Symbol:   h.Symbol,
			Name:     h.Name,
			Quantity: h.Quantity,
		}

		q, err := s.quotes.Quote(ctx, h.Symbol)
		if err != nil || q.Price.LessThanOrEqual(decimal.Zero) {
			log.Warn().
				Err(err).
				Str("symbol", h.Symbol).
				Msg("Quote failed, including holding unpriced")
			item.CurrentPrice = decimal.Zero
			item.MarketValue = decimal.Zero
			item.Priced = false
			items = append(items, item)
			continue
		}

		item.CurrentPrice = q.Price
		item.MarketValue = q.Price.Mul(decimal.NewFromInt(h.Quantity))
		item.Priced = true
		total = total.Add(item.MarketValue)
		items = append(items, item)
	}

	return &order.Portfolio{
		Items:      items,
		TotalValue: total,
	}, nil
}
