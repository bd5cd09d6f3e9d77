package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

type ctxKey int

const (
	queryStartKey ctxKey = iota
	querySQLKey
)

// QueryLogger implements pgx.QueryTracer for logging database queries
type QueryLogger struct {
	logger zerolog.Logger
}

// NewQueryLogger creates a new query logger
func NewQueryLogger(logger zerolog.Logger) *QueryLogger {
	return &QueryLogger{
		logger: logger,
	}
}

// TraceQueryStart is called at the beginning of Query, QueryRow, and Exec calls.
// The SQL text is only available here, so it is stashed in the context for
// TraceQueryEnd alongside the start time.
func (ql *QueryLogger) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	ctx = context.WithValue(ctx, queryStartKey, time.Now())
	return context.WithValue(ctx, querySQLKey, data.SQL)
}

// TraceQueryEnd is called at the end of Query, QueryRow, and Exec calls
func (ql *QueryLogger) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	start, ok := ctx.Value(queryStartKey).(time.Time)
	if !ok {
		start = time.Now()
	}
	duration := time.Since(start)

	sql, _ := ctx.Value(querySQLKey).(string)

	if data.Err != nil {
		ql.logger.Error().
			Str("sql", sql).
			Err(data.Err).
			Msg("Query failed")
		return
	}

	// Warn on slow queries (> 100ms)
	if duration > 100*time.Millisecond {
		ql.logger.Warn().
			Str("sql", sql).
			Int64("duration_ms", duration.Milliseconds()).
			Str("command_tag", data.CommandTag.String()).
			Msg("Slow query detected")
		return
	}

	ql.logger.Debug().
		Str("sql", sql).
		Int64("duration_ms", duration.Milliseconds()).
		Str("command_tag", data.CommandTag.String()).
		Msg("Query executed")
}
