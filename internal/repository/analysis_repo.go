package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shadowlynx/monitor/internal/domain"
)

// AnalysisRepository handles database reads for stored AI analyses.
// Analyses are written by the external agent and immutable here.
type AnalysisRepository struct {
	db      *sqlx.DB
	timeout time.Duration
}

// NewAnalysisRepository creates a new AnalysisRepository.
func NewAnalysisRepository(db *sqlx.DB, timeout time.Duration) *AnalysisRepository {
	return &AnalysisRepository{db: db, timeout: timeout}
}

// GetByID fetches one analysis by primary key.
func (r *AnalysisRepository) GetByID(ctx context.Context, id int64) (*domain.AIAnalysis, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var a domain.AIAnalysis
	err := r.db.GetContext(ctx, &a, `SELECT * FROM ai_analyses WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAnalysisNotFound
		}
		return nil, wrapErr("analysis_repo.GetByID", err)
	}
	return &a, nil
}

// ListRecent returns the newest analyses, optionally restricted to a kind.
// kind="" returns all kinds.
func (r *AnalysisRepository) ListRecent(ctx context.Context, kind domain.AnalysisKind, limit int) ([]*domain.AIAnalysis, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var analyses []*domain.AIAnalysis
	var err error
	if kind != "" {
		err = r.db.SelectContext(ctx, &analyses,
			`SELECT * FROM ai_analyses WHERE kind = $1 ORDER BY timestamp DESC, id DESC LIMIT $2`,
			string(kind), limit)
	} else {
		err = r.db.SelectContext(ctx, &analyses,
			`SELECT * FROM ai_analyses ORDER BY timestamp DESC, id DESC LIMIT $1`, limit)
	}
	if err != nil {
		return nil, wrapErr("analysis_repo.ListRecent", err)
	}
	return analyses, nil
}

// LatestForOpportunity returns the newest opportunity-kind analysis attached
// to the given opportunity, or ErrAnalysisNotFound.
func (r *AnalysisRepository) LatestForOpportunity(ctx context.Context, opportunityID int64) (*domain.AIAnalysis, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var a domain.AIAnalysis
	err := r.db.GetContext(ctx, &a, `
		SELECT * FROM ai_analyses
		WHERE kind = 'opportunity' AND opportunity_id = $1
		ORDER BY timestamp DESC, id DESC
		LIMIT 1`, opportunityID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAnalysisNotFound
		}
		return nil, wrapErr("analysis_repo.LatestForOpportunity", err)
	}
	return &a, nil
}
