package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shadowlynx/monitor/internal/domain"
)

// OpportunityRepository handles all database reads for arbitrage opportunities.
type OpportunityRepository struct {
	db      *sqlx.DB
	timeout time.Duration
}

// NewOpportunityRepository creates a new OpportunityRepository with the
// given per-query timeout.
func NewOpportunityRepository(db *sqlx.DB, timeout time.Duration) *OpportunityRepository {
	return &OpportunityRepository{db: db, timeout: timeout}
}

// buildWhere translates the filter into a WHERE clause and its args.
// Returns ("", nil) when no predicate is set.
func buildWhere(f domain.OpportunityFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}

	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.Network != "" {
		add("network = $%d", string(f.Network))
	}
	if f.TokenPair != "" {
		add("token_pair = $%d", f.TokenPair)
	}
	if f.SourceDEX != "" {
		add("source_dex = $%d", f.SourceDEX)
	}
	if f.TargetDEX != "" {
		add("target_dex = $%d", f.TargetDEX)
	}
	if f.MinProfit != nil {
		// Inclusive boundary: estimated_profit_usd >= min_profit.
		add("estimated_profit_usd >= $%d", *f.MinProfit)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List returns one page of opportunities matching the filter plus the total
// match count. Ordering is created_at DESC with id DESC as tie-break so
// page concatenation reproduces the full set exactly once.
func (r *OpportunityRepository) List(ctx context.Context, f domain.OpportunityFilter, limit, offset int) ([]*domain.Opportunity, int, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	where, args := buildWhere(f)

	var total int
	if err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM arbitrage_opportunities`+where, args...); err != nil {
		return nil, 0, wrapErr("opportunity_repo.List count", err)
	}

	query := fmt.Sprintf(
		`SELECT * FROM arbitrage_opportunities%s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var opps []*domain.Opportunity
	if err := r.db.SelectContext(ctx, &opps, query, args...); err != nil {
		return nil, 0, wrapErr("opportunity_repo.List select", err)
	}
	return opps, total, nil
}

// ListAll returns every opportunity matching the filter in listing order.
// Used by the CSV export, which preserves listing filter semantics but is
// not paginated.
func (r *OpportunityRepository) ListAll(ctx context.Context, f domain.OpportunityFilter) ([]*domain.Opportunity, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	where, args := buildWhere(f)
	var opps []*domain.Opportunity
	err := r.db.SelectContext(ctx, &opps,
		`SELECT * FROM arbitrage_opportunities`+where+` ORDER BY created_at DESC, id DESC`,
		args...)
	if err != nil {
		return nil, wrapErr("opportunity_repo.ListAll", err)
	}
	return opps, nil
}

// GetByID fetches an opportunity by its primary key.
func (r *OpportunityRepository) GetByID(ctx context.Context, id int64) (*domain.Opportunity, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var o domain.Opportunity
	err := r.db.GetContext(ctx, &o, `SELECT * FROM arbitrage_opportunities WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrOpportunityNotFound
		}
		return nil, wrapErr("opportunity_repo.GetByID", err)
	}
	return &o, nil
}

// GetWithExecution reads an opportunity together with its at-most-one
// execution in a single LEFT JOIN so the pair is never observed
// half-written. The execution is nil when no attempt has been recorded.
func (r *OpportunityRepository) GetWithExecution(ctx context.Context, id int64) (*domain.Opportunity, *domain.Execution, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var row struct {
		domain.Opportunity
		ExecID          *int64     `db:"exec_id"`
		ExecStatus      *string    `db:"exec_status"`
		TransactionHash *string    `db:"exec_transaction_hash"`
		ActualProfitUSD *float64   `db:"exec_actual_profit_usd"`
		GasCostUSD      *float64   `db:"exec_gas_cost_usd"`
		NetProfitUSD    *float64   `db:"exec_net_profit_usd"`
		FlashLoanFee    *float64   `db:"exec_flash_loan_fee"`
		ExecutionTimeMs *int       `db:"exec_execution_time_ms"`
		ErrorMessage    *string    `db:"exec_error_message"`
		ExecutedAt      *time.Time `db:"exec_executed_at"`
	}

	err := r.db.GetContext(ctx, &row, `
		SELECT o.*,
		       e.id                AS exec_id,
		       e.status            AS exec_status,
		       e.transaction_hash  AS exec_transaction_hash,
		       e.actual_profit_usd AS exec_actual_profit_usd,
		       e.gas_cost_usd      AS exec_gas_cost_usd,
		       e.net_profit_usd    AS exec_net_profit_usd,
		       e.flash_loan_fee    AS exec_flash_loan_fee,
		       e.execution_time_ms AS exec_execution_time_ms,
		       e.error_message     AS exec_error_message,
		       e.executed_at       AS exec_executed_at
		FROM arbitrage_opportunities o
		LEFT JOIN arbitrage_executions e ON e.opportunity_id = o.id
		WHERE o.id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, domain.ErrOpportunityNotFound
		}
		return nil, nil, wrapErr("opportunity_repo.GetWithExecution", err)
	}

	opp := row.Opportunity
	if row.ExecID == nil {
		return &opp, nil, nil
	}
	exec := &domain.Execution{
		ID:              *row.ExecID,
		OpportunityID:   opp.ID,
		Status:          domain.ExecStatus(*row.ExecStatus),
		ActualProfitUSD: row.ActualProfitUSD,
		GasCostUSD:      row.GasCostUSD,
		NetProfitUSD:    row.NetProfitUSD,
		FlashLoanFee:    row.FlashLoanFee,
		ExecutionTimeMs: row.ExecutionTimeMs,
		ErrorMessage:    row.ErrorMessage,
	}
	if row.TransactionHash != nil {
		exec.TransactionHash = *row.TransactionHash
	}
	if row.ExecutedAt != nil {
		exec.ExecutedAt = *row.ExecutedAt
	}
	return &opp, exec, nil
}

// Recent returns the newest opportunities for the dashboard table.
func (r *OpportunityRepository) Recent(ctx context.Context, limit int) ([]*domain.Opportunity, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var opps []*domain.Opportunity
	err := r.db.SelectContext(ctx, &opps,
		`SELECT * FROM arbitrage_opportunities ORDER BY created_at DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, wrapErr("opportunity_repo.Recent", err)
	}
	return opps, nil
}

// FilterOptions returns the distinct values feeding the listing dropdowns.
// DEXes is the union of source and target venues.
func (r *OpportunityRepository) FilterOptions(ctx context.Context) (*domain.FilterOptions, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	opts := &domain.FilterOptions{}

	if err := r.db.SelectContext(ctx, &opts.Networks,
		`SELECT DISTINCT network FROM arbitrage_opportunities ORDER BY network`); err != nil {
		return nil, wrapErr("opportunity_repo.FilterOptions networks", err)
	}
	if err := r.db.SelectContext(ctx, &opts.DEXes, `
		SELECT DISTINCT dex FROM (
			SELECT source_dex AS dex FROM arbitrage_opportunities
			UNION
			SELECT target_dex AS dex FROM arbitrage_opportunities
		) d ORDER BY dex`); err != nil {
		return nil, wrapErr("opportunity_repo.FilterOptions dexes", err)
	}
	if err := r.db.SelectContext(ctx, &opts.TokenPairs,
		`SELECT DISTINCT token_pair FROM arbitrage_opportunities ORDER BY token_pair`); err != nil {
		return nil, wrapErr("opportunity_repo.FilterOptions pairs", err)
	}
	return opts, nil
}

// distributionColumns whitelists the GROUP BY dimensions exposed by the
// distribution endpoint. Never interpolate caller input directly.
var distributionColumns = map[string]string{
	"network": "network",
	"dex":     "source_dex",
}

// CountBy returns opportunity counts grouped by the named dimension
// ("network" or "dex"). Unknown dimensions are a programming error.
func (r *OpportunityRepository) CountBy(ctx context.Context, dimension string) (map[string]int, error) {
	col, ok := distributionColumns[dimension]
	if !ok {
		return nil, fmt.Errorf("opportunity_repo.CountBy: unknown dimension %q", dimension)
	}

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	rows := []struct {
		Value string `db:"value"`
		Count int    `db:"count"`
	}{}
	query := fmt.Sprintf(
		`SELECT %s AS value, COUNT(*) AS count FROM arbitrage_opportunities GROUP BY %s`, col, col)
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, wrapErr("opportunity_repo.CountBy", err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Value] = row.Count
	}
	return counts, nil
}
