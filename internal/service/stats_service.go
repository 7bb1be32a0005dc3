package service

import (
	"context"
	"time"

	"github.com/shadowlynx/monitor/internal/config"
	"github.com/shadowlynx/monitor/internal/domain"
	"github.com/shadowlynx/monitor/internal/repository"
)

// StatsService is the aggregation engine: profit summaries, success rate,
// distributions, and the grouped price series behind the chart. All numbers
// leave this service unrounded; the view layer applies the 2dp contract.
type StatsService struct {
	execRepo  *repository.ExecutionRepository
	oppRepo   *repository.OpportunityRepository
	priceRepo *repository.PriceRepository
	cfg       *config.Config
}

// NewStatsService creates a StatsService.
func NewStatsService(
	execRepo *repository.ExecutionRepository,
	oppRepo *repository.OpportunityRepository,
	priceRepo *repository.PriceRepository,
	cfg *config.Config,
) *StatsService {
	return &StatsService{execRepo: execRepo, oppRepo: oppRepo, priceRepo: priceRepo, cfg: cfg}
}

// Summarize aggregates successful executions over the trailing window.
// window ≤ 0 uses the configured default (24h).
func (s *StatsService) Summarize(ctx context.Context, window time.Duration) (*domain.ProfitSummary, error) {
	if window <= 0 {
		window = s.cfg.Stats.SummaryWindow
	}
	return s.execRepo.SummarizeSince(ctx, time.Now().UTC().Add(-window))
}

// SuccessRate returns successful/total×100 over all executions.
// Zero executions yield 0, never a division by zero.
func (s *StatsService) SuccessRate(ctx context.Context) (float64, error) {
	successful, total, err := s.execRepo.CountByOutcome(ctx)
	if err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}
	return float64(successful) / float64(total) * 100, nil
}

// DistributionBy returns each dimension value's share of all opportunities
// as a percentage. Shares are exact (they sum to 100 for non-empty input);
// rounding happens only at presentation, never accumulated here. An empty
// store yields an empty map.
func (s *StatsService) DistributionBy(ctx context.Context, dimension string) (map[string]float64, error) {
	counts, err := s.oppRepo.CountBy(ctx, dimension)
	if err != nil {
		return nil, err
	}
	return domain.Shares(counts), nil
}

// PriceSeries returns the chart series over the configured lookback window,
// grouped by token then dex, each sub-series sorted by timestamp. tokens
// restricts the result; empty means all tokens.
func (s *StatsService) PriceSeries(ctx context.Context, tokens []string) (domain.PriceSeries, error) {
	since := time.Now().UTC().Add(-s.cfg.Stats.PriceChartWindow)
	samples, err := s.priceRepo.SamplesForTokens(ctx, since, tokens)
	if err != nil {
		return domain.PriceSeries{}, err
	}
	return domain.GroupPrices(samples), nil
}

// ProfitHistory returns per-day aggregates for the trailing number of days.
func (s *StatsService) ProfitHistory(ctx context.Context, days int) ([]*domain.DailyProfit, error) {
	if days <= 0 {
		days = 30
	}
	return s.execRepo.ProfitByDay(ctx, days)
}

// RecentOpportunities and RecentExecutions feed the dashboard tables.

func (s *StatsService) RecentOpportunities(ctx context.Context, limit int) ([]*domain.Opportunity, error) {
	return s.oppRepo.Recent(ctx, limit)
}

func (s *StatsService) RecentExecutions(ctx context.Context, limit int) ([]*domain.ExecutionWithOpportunity, error) {
	return s.execRepo.RecentWithOpportunities(ctx, limit)
}

// ExportExecutions returns the full joined execution set for the trailing
// number of days, for the CSV export. days ≤ 0 defaults to 30.
func (s *StatsService) ExportExecutions(ctx context.Context, days int) ([]*domain.ExecutionWithOpportunity, error) {
	if days <= 0 {
		days = 30
	}
	since := time.Now().UTC().AddDate(0, 0, -days)
	return s.execRepo.AllWithOpportunities(ctx, since)
}
