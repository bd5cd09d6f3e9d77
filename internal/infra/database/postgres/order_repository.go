package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/wonny/papertrade/internal/domain/order"
)

// OrderRepository implements order.Ledger using PostgreSQL
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Append durably persists a committed order
func (r *OrderRepository) Append(ctx context.Context, o *order.Order) error {
	query := `
		INSERT INTO trade.orders (order_id, symbol, side, volume, price, created_ts)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		o.OrderID,
		o.Symbol,
		o.Side,
		o.Volume,
		o.Price,
		o.CreatedTS,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	return nil
}

// Get retrieves an order by ID
func (r *OrderRepository) Get(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	query := `
		SELECT o.order_id, o.symbol, COALESCE(s.company_name, ''), o.side,
		       o.volume, o.price, o.created_ts
		FROM trade.orders o
		LEFT JOIN market.stocks s ON s.symbol = o.symbol
		WHERE o.order_id = $1
	`

	var o order.Order
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&o.OrderID,
		&o.Symbol,
		&o.Name,
		&o.Side,
		&o.Volume,
		&o.Price,
		&o.CreatedTS,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrOrderNotFound
		}
		return nil, fmt.Errorf("query order: %w", err)
	}

	return &o, nil
}

// List retrieves orders matching the filter, most recent first
func (r *OrderRepository) List(ctx context.Context, filter order.ListFilter) ([]*order.Order, error) {
	whereClauses := []string{}
	args := []interface{}{}
	argIndex := 1

	if filter.Side != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("o.side = $%d", argIndex))
		args = append(args, *filter.Side)
		argIndex++
	}

	if filter.Symbol != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("o.symbol = $%d", argIndex))
		args = append(args, *filter.Symbol)
		argIndex++
	}

	whereClause := ""
	if len(whereClauses) > 0 {
		whereClause = "WHERE " + strings.Join(whereClauses, " AND ")
	}

	limitClause := ""
	if filter.Limit > 0 {
		limitClause = fmt.Sprintf("LIMIT $%d", argIndex)
		args = append(args, filter.Limit)
	}

	query := fmt.Sprintf(`
		SELECT o.order_id, o.symbol, COALESCE(s.company_name, ''), o.side,
		       o.volume, o.price, o.created_ts
		FROM trade.orders o
		LEFT JOIN market.stocks s ON s.symbol = o.symbol
		%s
		ORDER BY o.created_ts DESC, o.order_id DESC
		%s
	`, whereClause, limitClause)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []*order.Order
	for rows.Next() {
		var o order.Order
		err := rows.Scan(
			&o.OrderID,
			&o.Symbol,
			&o.Name,
			&o.Side,
			&o.Volume,
			&o.Price,
			&o.CreatedTS,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, &o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return orders, nil
}

// AllHoldings aggregates net positions per symbol, keeping only strictly
// positive sums.
func (r *OrderRepository) AllHoldings(ctx context.Context) ([]order.Holding, error) {
	query := `
		SELECT o.symbol, COALESCE(s.company_name, ''),
		       SUM(CASE WHEN o.side = 'BUY' THEN o.volume ELSE -o.volume END) AS quantity
		FROM trade.orders o
		LEFT JOIN market.stocks s ON s.symbol = o.symbol
		GROUP BY o.symbol, s.company_name
		HAVING SUM(CASE WHEN o.side = 'BUY' THEN o.volume ELSE -o.volume END) > 0
		ORDER BY o.symbol ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query holdings: %w", err)
	}
	defer rows.Close()

	holdings := []order.Holding{}
	for rows.Next() {
		var h order.Holding
		if err := rows.Scan(&h.Symbol, &h.Name, &h.Quantity); err != nil {
			return nil, fmt.Errorf("scan holding: %w", err)
		}
		holdings = append(holdings, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return holdings, nil
}
