package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/wonny/papertrade/internal/domain/order"
	"github.com/wonny/papertrade/internal/domain/stock"
)

// Service manages the stock catalog. The trading engine consumes it only
// through the narrow stock.Lookup surface; the mutating operations exist for
// catalog administration.
type Service struct {
	repo stock.Repository
}

// NewService creates a new catalog service
func NewService(repo stock.Repository) *Service {
	return &Service{repo: repo}
}

// CreateStock inserts a new catalog entry. The symbol is trimmed and
// uppercased before validation; duplicates are rejected.
func (s *Service) CreateStock(ctx context.Context, symbol, companyName, exchange, industry string) (*stock.Stock, error) {
	symbol = order.NormalizeSymbol(symbol)
	if !stock.ValidateSymbol(symbol) {
		return nil, stock.ErrInvalidSymbol
	}
	if companyName == "" {
		return nil, stock.ErrEmptyName
	}
	if !stock.ValidateExchange(exchange) {
		return nil, stock.ErrInvalidExchange
	}

	exists, err := s.repo.ExistsBySymbol(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, stock.ErrDuplicateSymbol
	}

	now := time.Now().UTC()
	st := &stock.Stock{
		ID:          uuid.New(),
		Symbol:      symbol,
		CompanyName: companyName,
		Exchange:    exchange,
		Industry:    industry,
		CreatedTS:   now,
		UpdatedTS:   now,
	}

	if err := s.repo.Create(ctx, st); err != nil {
		return nil, err
	}

	log.Info().
		Str("symbol", st.Symbol).
		Str("exchange", st.Exchange).
		Msg("Stock created")

	return st, nil
}

// GetStock returns a catalog entry by ID.
func (s *Service) GetStock(ctx context.Context, id uuid.UUID) (*stock.Stock, error) {
	return s.repo.GetByID(ctx, id)
}

// GetStockBySymbol returns a catalog entry by symbol.
func (s *Service) GetStockBySymbol(ctx context.Context, symbol string) (*stock.Stock, error) {
	return s.repo.GetBySymbol(ctx, order.NormalizeSymbol(symbol))
}

// ListStocks returns paginated catalog entries.
func (s *Service) ListStocks(ctx context.Context, filter stock.ListFilter) (*stock.ListResult, error) {
	if err := filter.Normalize(); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, filter)
}

// UpdateStock replaces the mutable fields of an existing entry. A symbol
// change is re-checked for uniqueness.
func (s *Service) UpdateStock(ctx context.Context, id uuid.UUID, symbol, companyName, exchange, industry string) (*stock.Stock, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	symbol = order.NormalizeSymbol(symbol)
	if !stock.ValidateSymbol(symbol) {
		return nil, stock.ErrInvalidSymbol
	}
	if companyName == "" {
		return nil, stock.ErrEmptyName
	}
	if !stock.ValidateExchange(exchange) {
		return nil, stock.ErrInvalidExchange
	}

	if symbol != existing.Symbol {
		exists, err := s.repo.ExistsBySymbol(ctx, symbol)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, stock.ErrDuplicateSymbol
		}
	}

	existing.Symbol = symbol
	existing.CompanyName = companyName
	existing.Exchange = exchange
	existing.Industry = industry
	existing.UpdatedTS = time.Now().UTC()

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}

	return existing, nil
}

// DeleteStock removes a catalog entry by ID.
func (s *Service) DeleteStock(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
