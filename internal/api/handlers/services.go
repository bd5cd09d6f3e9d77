package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/wonny/papertrade/internal/domain/order"
	"github.com/wonny/papertrade/internal/domain/stock"
)

// TradingService exposes the order placement and query operations used by the handlers.
type TradingService interface {
	PlaceOrder(ctx context.Context, symbol, side string, volume int64) (*order.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*order.Order, error)
	ListOrders(ctx context.Context, filter order.ListFilter) ([]*order.Order, error)
	CurrentHoldings(ctx context.Context, symbol string) (int64, error)
	CurrentPortfolio(ctx context.Context) (*order.Portfolio, error)
}

// CatalogService exposes the stock catalog operations used by the handlers.
type CatalogService interface {
	CreateStock(ctx context.Context, symbol, companyName, exchange, industry string) (*stock.Stock, error)
	GetStock(ctx context.Context, id uuid.UUID) (*stock.Stock, error)
	GetStockBySymbol(ctx context.Context, symbol string) (*stock.Stock, error)
	ListStocks(ctx context.Context, filter stock.ListFilter) (*stock.ListResult, error)
	UpdateStock(ctx context.Context, id uuid.UUID, symbol, companyName, exchange, industry string) (*stock.Stock, error)
	DeleteStock(ctx context.Context, id uuid.UUID) error
}
