package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shadowlynx/monitor/internal/domain"
)

// ExecutionRepository handles all database reads for arbitrage executions.
type ExecutionRepository struct {
	db      *sqlx.DB
	timeout time.Duration
}

// NewExecutionRepository creates a new ExecutionRepository.
func NewExecutionRepository(db *sqlx.DB, timeout time.Duration) *ExecutionRepository {
	return &ExecutionRepository{db: db, timeout: timeout}
}

// GetByOpportunity fetches the at-most-one execution for an opportunity.
func (r *ExecutionRepository) GetByOpportunity(ctx context.Context, opportunityID int64) (*domain.Execution, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var e domain.Execution
	err := r.db.GetContext(ctx, &e,
		`SELECT * FROM arbitrage_executions WHERE opportunity_id = $1`, opportunityID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrExecutionNotFound
		}
		return nil, wrapErr("execution_repo.GetByOpportunity", err)
	}
	return &e, nil
}

// SummarizeSince aggregates successful executions with executed_at within
// the window. Sums use COALESCE so an empty window yields zeros, not NULLs.
// Rounding is left to the presentation layer.
func (r *ExecutionRepository) SummarizeSince(ctx context.Context, since time.Time) (*domain.ProfitSummary, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var row struct {
		TotalProfit float64 `db:"total_profit"`
		Count       int     `db:"count"`
	}
	err := r.db.GetContext(ctx, &row, `
		SELECT COALESCE(SUM(net_profit_usd), 0) AS total_profit,
		       COUNT(*)                         AS count
		FROM arbitrage_executions
		WHERE status = 'success' AND executed_at >= $1`, since)
	if err != nil {
		return nil, wrapErr("execution_repo.SummarizeSince", err)
	}

	summary := &domain.ProfitSummary{
		TotalProfitUSD:    row.TotalProfit,
		TotalTransactions: row.Count,
	}
	if row.Count > 0 {
		summary.AvgProfitPerTrade = row.TotalProfit / float64(row.Count)
	}
	return summary, nil
}

// CountByOutcome returns (successful, total) execution counts in one query.
func (r *ExecutionRepository) CountByOutcome(ctx context.Context) (successful, total int, err error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var row struct {
		Successful int `db:"successful"`
		Total      int `db:"total"`
	}
	err = r.db.GetContext(ctx, &row, `
		SELECT COUNT(*) FILTER (WHERE status = 'success') AS successful,
		       COUNT(*)                                   AS total
		FROM arbitrage_executions`)
	if err != nil {
		return 0, 0, wrapErr("execution_repo.CountByOutcome", err)
	}
	return row.Successful, row.Total, nil
}

// RecentWithOpportunities returns the newest executions joined with their
// opportunities for the dashboard table. A single joined SELECT keeps each
// pair consistent.
func (r *ExecutionRepository) RecentWithOpportunities(ctx context.Context, limit int) ([]*domain.ExecutionWithOpportunity, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var rows []*domain.ExecutionWithOpportunity
	err := r.db.SelectContext(ctx, &rows, `
		SELECT e.*,
		       o.token_pair, o.source_dex, o.target_dex, o.network, o.estimated_profit_usd
		FROM arbitrage_executions e
		JOIN arbitrage_opportunities o ON o.id = e.opportunity_id
		ORDER BY e.executed_at DESC, e.id DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, wrapErr("execution_repo.RecentWithOpportunities", err)
	}
	return rows, nil
}

// AllWithOpportunities returns every execution with executed_at within the
// window, joined with its opportunity. Feeds the CSV export; unlike
// RecentWithOpportunities it is unpaginated.
func (r *ExecutionRepository) AllWithOpportunities(ctx context.Context, since time.Time) ([]*domain.ExecutionWithOpportunity, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var rows []*domain.ExecutionWithOpportunity
	err := r.db.SelectContext(ctx, &rows, `
		SELECT e.*,
		       o.token_pair, o.source_dex, o.target_dex, o.network, o.estimated_profit_usd
		FROM arbitrage_executions e
		JOIN arbitrage_opportunities o ON o.id = e.opportunity_id
		WHERE e.executed_at >= $1
		ORDER BY e.executed_at DESC, e.id DESC`, since)
	if err != nil {
		return nil, wrapErr("execution_repo.AllWithOpportunities", err)
	}
	return rows, nil
}

// ProfitByDay aggregates per-day profit history for the trailing number of
// days. Days with no executions simply do not appear.
func (r *ExecutionRepository) ProfitByDay(ctx context.Context, days int) ([]*domain.DailyProfit, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var rows []*domain.DailyProfit
	err := r.db.SelectContext(ctx, &rows, `
		SELECT date_trunc('day', executed_at) AS day,
		       COALESCE(SUM(net_profit_usd) FILTER (WHERE status = 'success'), 0) AS total_profit_usd,
		       COUNT(*)                                                           AS total_transactions,
		       CASE WHEN COUNT(*) = 0 THEN 0
		            ELSE COUNT(*) FILTER (WHERE status = 'success')::float / COUNT(*) * 100
		       END                                                                AS success_rate,
		       CASE WHEN COUNT(*) FILTER (WHERE status = 'success') = 0 THEN 0
		            ELSE COALESCE(SUM(net_profit_usd) FILTER (WHERE status = 'success'), 0)
		                 / COUNT(*) FILTER (WHERE status = 'success')
		       END                                                                AS avg_profit_per_trade
		FROM arbitrage_executions
		WHERE executed_at >= now() - ($1 || ' days')::interval
		GROUP BY day
		ORDER BY day ASC`, days)
	if err != nil {
		return nil, wrapErr("execution_repo.ProfitByDay", err)
	}
	return rows, nil
}
