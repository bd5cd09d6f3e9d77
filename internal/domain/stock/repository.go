package stock

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for catalog data access
type Repository interface {
	// Create inserts a new stock, or returns ErrDuplicateSymbol.
	Create(ctx context.Context, s *Stock) error

	// GetByID returns a stock by ID, or ErrStockNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*Stock, error)

	// GetBySymbol returns a stock by symbol, or ErrStockNotFound.
	GetBySymbol(ctx context.Context, symbol string) (*Stock, error)

	// List returns paginated stocks with filters
	List(ctx context.Context, filter ListFilter) (*ListResult, error)

	// Update replaces the mutable fields of an existing stock.
	Update(ctx context.Context, s *Stock) error

	// Delete removes a stock by ID, or returns ErrStockNotFound.
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsBySymbol reports whether a stock with the symbol exists.
	ExistsBySymbol(ctx context.Context, symbol string) (bool, error)
}

// Lookup is the narrow read surface the placement engine depends on.
type Lookup interface {
	GetBySymbol(ctx context.Context, symbol string) (*Stock, error)
}
