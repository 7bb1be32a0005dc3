package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shadowlynx/monitor/internal/domain"
)

// PriceRepository reads the append-only DEX price samples behind the chart.
type PriceRepository struct {
	db      *sqlx.DB
	timeout time.Duration
}

// NewPriceRepository creates a new PriceRepository.
func NewPriceRepository(db *sqlx.DB, timeout time.Duration) *PriceRepository {
	return &PriceRepository{db: db, timeout: timeout}
}

// SamplesSince returns all samples observed after the cutoff, oldest first.
// Producers may insert out of order, so callers must not rely on this
// ordering alone; grouping re-sorts each (token, dex) sub-series.
func (r *PriceRepository) SamplesSince(ctx context.Context, since time.Time) ([]domain.PriceSample, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var samples []domain.PriceSample
	err := r.db.SelectContext(ctx, &samples,
		`SELECT * FROM token_prices WHERE timestamp > $1 ORDER BY timestamp ASC`, since)
	if err != nil {
		return nil, wrapErr("price_repo.SamplesSince", err)
	}
	return samples, nil
}

// SamplesForTokens is SamplesSince restricted to the given token symbols.
// An empty token list returns all tokens.
func (r *PriceRepository) SamplesForTokens(ctx context.Context, since time.Time, tokens []string) ([]domain.PriceSample, error) {
	if len(tokens) == 0 {
		return r.SamplesSince(ctx, since)
	}

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query, args, err := sqlx.In(
		`SELECT * FROM token_prices WHERE timestamp > ? AND token_symbol IN (?) ORDER BY timestamp ASC`,
		since, tokens)
	if err != nil {
		return nil, wrapErr("price_repo.SamplesForTokens build", err)
	}
	query = r.db.Rebind(query)

	var samples []domain.PriceSample
	if err := r.db.SelectContext(ctx, &samples, query, args...); err != nil {
		return nil, wrapErr("price_repo.SamplesForTokens", err)
	}
	return samples, nil
}
