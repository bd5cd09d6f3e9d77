package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/wonny/papertrade/internal/domain/stock"
)

// uniqueViolation is the PostgreSQL error code for unique constraint violations
const uniqueViolation = "23505"

// StockRepository implements stock.Repository using PostgreSQL
type StockRepository struct {
	pool *pgxpool.Pool
}

// NewStockRepository creates a new StockRepository
func NewStockRepository(pool *pgxpool.Pool) *StockRepository {
	return &StockRepository{pool: pool}
}

// Create inserts a new stock
func (r *StockRepository) Create(ctx context.Context, s *stock.Stock) error {
	query := `
		INSERT INTO market.stocks (id, symbol, company_name, exchange, industry, created_ts, updated_ts)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		s.ID,
		s.Symbol,
		s.CompanyName,
		s.Exchange,
		s.Industry,
		s.CreatedTS,
		s.UpdatedTS,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return stock.ErrDuplicateSymbol
		}
		return fmt.Errorf("insert stock: %w", err)
	}

	return nil
}

// GetByID retrieves a stock by ID
func (r *StockRepository) GetByID(ctx context.Context, id uuid.UUID) (*stock.Stock, error) {
	query := `
		SELECT id, symbol, company_name, exchange, industry, created_ts, updated_ts
		FROM market.stocks
		WHERE id = $1
	`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

// GetBySymbol retrieves a stock by symbol
func (r *StockRepository) GetBySymbol(ctx context.Context, symbol string) (*stock.Stock, error) {
	query := `
		SELECT id, symbol, company_name, exchange, industry, created_ts, updated_ts
		FROM market.stocks
		WHERE symbol = $1
	`
	return r.scanOne(r.pool.QueryRow(ctx, query, symbol))
}

// List returns paginated stocks with filters
func (r *StockRepository) List(ctx context.Context, filter stock.ListFilter) (*stock.ListResult, error) {
	whereClauses := []string{}
	args := []interface{}{}
	argIndex := 1

	if filter.Exchange != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("exchange = $%d", argIndex))
		args = append(args, filter.Exchange)
		argIndex++
	}

	if filter.Industry != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("industry = $%d", argIndex))
		args = append(args, filter.Industry)
		argIndex++
	}

	if filter.Search != "" {
		searchPattern := "%" + strings.ToUpper(strings.TrimSpace(filter.Search)) + "%"
		whereClauses = append(whereClauses, fmt.Sprintf("(symbol LIKE $%d OR UPPER(company_name) LIKE $%d)", argIndex, argIndex))
		args = append(args, searchPattern)
		argIndex++
	}

	whereClause := ""
	if len(whereClauses) > 0 {
		whereClause = "WHERE " + strings.Join(whereClauses, " AND ")
	}

	// Count total
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM market.stocks %s", whereClause)
	var totalCount int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, fmt.Errorf("count stocks: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit

	query := fmt.Sprintf(`
		SELECT id, symbol, company_name, exchange, industry, created_ts, updated_ts
		FROM market.stocks
		%s
		ORDER BY symbol ASC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIndex, argIndex+1)

	args = append(args, filter.Limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query stocks: %w", err)
	}
	defer rows.Close()

	stocks := []stock.Stock{}
	for rows.Next() {
		var s stock.Stock
		err := rows.Scan(&s.ID, &s.Symbol, &s.CompanyName, &s.Exchange, &s.Industry, &s.CreatedTS, &s.UpdatedTS)
		if err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		stocks = append(stocks, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return &stock.ListResult{
		Stocks:     stocks,
		TotalCount: totalCount,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// Update replaces the mutable fields of an existing stock
func (r *StockRepository) Update(ctx context.Context, s *stock.Stock) error {
	query := `
		UPDATE market.stocks
		SET symbol = $1, company_name = $2, exchange = $3, industry = $4, updated_ts = $5
		WHERE id = $6
	`

	result, err := r.pool.Exec(ctx, query,
		s.Symbol,
		s.CompanyName,
		s.Exchange,
		s.Industry,
		s.UpdatedTS,
		s.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return stock.ErrDuplicateSymbol
		}
		return fmt.Errorf("update stock: %w", err)
	}

	if result.RowsAffected() == 0 {
		return stock.ErrStockNotFound
	}

	return nil
}

// Delete removes a stock by ID
func (r *StockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM market.stocks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete stock: %w", err)
	}

	if result.RowsAffected() == 0 {
		return stock.ErrStockNotFound
	}

	return nil
}

// ExistsBySymbol reports whether a stock with the symbol exists
func (r *StockRepository) ExistsBySymbol(ctx context.Context, symbol string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM market.stocks WHERE symbol = $1)`
	if err := r.pool.QueryRow(ctx, query, symbol).Scan(&exists); err != nil {
		return false, fmt.Errorf("check stock exists: %w", err)
	}
	return exists, nil
}

// scanOne scans a single stock row
func (r *StockRepository) scanOne(row pgx.Row) (*stock.Stock, error) {
	var s stock.Stock
	err := row.Scan(&s.ID, &s.Symbol, &s.CompanyName, &s.Exchange, &s.Industry, &s.CreatedTS, &s.UpdatedTS)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, stock.ErrStockNotFound
		}
		return nil, fmt.Errorf("query stock: %w", err)
	}
	return &s, nil
}

// isUniqueViolation reports whether err is a unique constraint violation
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
