package trading

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/wonny/papertrade/internal/domain/order"
	"github.com/wonny/papertrade/internal/domain/quote"
	"github.com/wonny/papertrade/internal/domain/stock"
)

// Service is the order placement and portfolio valuation engine. It owns no
// state beyond per-symbol locks; all positions are derived from the ledger on
// every call.
type Service struct {
	ledger  order.Ledger
	catalog stock.Lookup
	quotes  quote.Source

	// Per-symbol locks serialize the read-validate-append sequence of
	// PlaceOrder. Holdings must never go negative, and two overlapping SELLs
	// for the same symbol could otherwise both pass validation against the
	// same ledger snapshot.
	mu      sync.Mutex
	symbols map[string]*sync.Mutex
}

// NewService creates a new trading service
func NewService(ledger order.Ledger, catalog stock.Lookup, quotes quote.Source) *Service {
	return &Service{
		ledger:  ledger,
		catalog: catalog,
		quotes:  quotes,
		symbols: make(map[string]*sync.Mutex),
	}
}

// symbolLock returns the mutex guarding commits for one symbol.
func (s *Service) symbolLock(symbol string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.symbols[symbol]
	if !ok {
		lock = &sync.Mutex{}
		s.symbols[symbol] = lock
	}
	return lock
}

// PlaceOrder validates and commits a new order. It either returns a fully
// committed order or one of the domain errors without touching the ledger.
func (s *Service) PlaceOrder(ctx context.Context, rawSymbol, side string, volume int64) (*order.Order, error) {
	symbol := order.NormalizeSymbol(rawSymbol)
	if symbol == "" {
		return nil, order.ErrEmptySymbol
	}
	if !order.ValidateSide(side) {
		return nil, order.ErrInvalidSide
	}
	if volume <= 0 {
		return nil, order.ErrInvalidVolume
	}

	// Resolve the instrument; unknown symbols never reach the ledger.
	instrument, err := s.catalog.GetBySymbol(ctx, symbol)
	if err != nil {
		return nil, err
	}

	lock := s.symbolLock(symbol)
	lock.Lock()
	defer lock.Unlock()

	if side == order.SideSell {
		available, err := s.CurrentHoldings(ctx, symbol)
		if err != nil {
			return nil, err
		}
		if volume > available {
			return nil, &order.InsufficientHoldingsError{
				Symbol:    symbol,
				Requested: volume,
				Available: available,
			}
		}
	}

	q, err := s.quotes.Quote(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if q.Price.LessThanOrEqual(decimal.Zero) {
		return nil, &quote.UnavailableError{Symbol: symbol}
	}

	// Cancellation after this point cannot leave a partial order: Append is
	// a single insert and the operation is final once it succeeds.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	o := &order.Order{
		OrderID:   uuid.New(),
		Symbol:    instrument.Symbol,
		Name:      instrument.CompanyName,
		Side:      side,
		Volume:    volume,
		Price:     q.Price,
		CreatedTS: time.Now().UTC(),
	}

	if err := s.ledger.Append(ctx, o); err != nil {
		return nil, fmt.Errorf("append order: %w", err)
	}

	log.Info().
		Str("order_id", o.OrderID.String()).
		Str("symbol", o.Symbol).
		Str("side", o.Side).
		Int64("volume", o.Volume).
		Str("price", o.Price.String()).
		Msg("Order committed")

	return o, nil
}

// GetOrder returns a committed order by ID.
func (s *Service) GetOrder(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return s.ledger.Get(ctx, id)
}

// ListOrders returns orders matching the filter, most recent first.
func (s *Service) ListOrders(ctx context.Context, filter order.ListFilter) ([]*order.Order, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	if filter.Symbol != nil {
		normalized := order.NormalizeSymbol(*filter.Symbol)
		filter.Symbol = &normalized
	}
	return s.ledger.List(ctx, filter)
}
