// Package service holds the query-side engines: opportunity listing with
// filter/pagination, profit and distribution aggregation, health probing,
// and trigger forwarding to the external AI agent.
package service

import (
	"context"
	"errors"

	"github.com/shadowlynx/monitor/internal/domain"
	"github.com/shadowlynx/monitor/internal/repository"
)

// ListingService is the filter & pagination engine for opportunities.
// It is a pure read path: no side effects, no state between requests.
type ListingService struct {
	oppRepo      *repository.OpportunityRepository
	analysisRepo *repository.AnalysisRepository
}

// NewListingService creates a ListingService.
func NewListingService(oppRepo *repository.OpportunityRepository, analysisRepo *repository.AnalysisRepository) *ListingService {
	return &ListingService{oppRepo: oppRepo, analysisRepo: analysisRepo}
}

// ListOpportunities returns one page of the filtered listing plus the
// pagination envelope.
//
// page is 1-indexed; page ≤ 0 is a validation error. A page past the end is
// not an error: it returns empty items with HasNext=false and the true
// total. Ordering is created_at DESC, id DESC.
func (s *ListingService) ListOpportunities(ctx context.Context, f domain.OpportunityFilter, page, perPage int) ([]*domain.Opportunity, domain.PageMeta, error) {
	if page <= 0 {
		return nil, domain.PageMeta{}, domain.ErrInvalidPage
	}
	if perPage <= 0 {
		perPage = domain.DefaultPerPage
	}
	if perPage > domain.MaxPerPage {
		perPage = domain.MaxPerPage
	}

	offset := (page - 1) * perPage
	items, total, err := s.oppRepo.List(ctx, f, perPage, offset)
	if err != nil {
		return nil, domain.PageMeta{}, err
	}

	meta := domain.NewPageMeta(total, page, perPage)
	if len(items) == 0 {
		// Past-the-end pages must never claim a next page.
		meta.HasNext = false
	}
	return items, meta, nil
}

// ExportOpportunities returns the complete filtered listing for CSV export,
// same predicates and ordering as ListOpportunities but unpaginated.
func (s *ListingService) ExportOpportunities(ctx context.Context, f domain.OpportunityFilter) ([]*domain.Opportunity, error) {
	return s.oppRepo.ListAll(ctx, f)
}

// OpportunityDetail is the fully resolved detail view: the opportunity, its
// at-most-one execution, the derived lifecycle state, and the newest stored
// AI analysis when one exists.
type OpportunityDetail struct {
	Opportunity *domain.Opportunity
	Execution   *domain.Execution
	State       domain.LifecycleState
	Analysis    *domain.AIAnalysis
}

// GetOpportunity reads one opportunity with its execution and lifecycle
// state. A missing analysis is normal and leaves Analysis nil.
func (s *ListingService) GetOpportunity(ctx context.Context, id int64) (*OpportunityDetail, error) {
	opp, exec, err := s.oppRepo.GetWithExecution(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &OpportunityDetail{
		Opportunity: opp,
		Execution:   exec,
		State:       opp.Lifecycle(exec),
	}

	analysis, err := s.analysisRepo.LatestForOpportunity(ctx, id)
	switch {
	case err == nil:
		detail.Analysis = analysis
	case errors.Is(err, domain.ErrAnalysisNotFound):
	default:
		return nil, err
	}
	return detail, nil
}

// FilterOptions returns the distinct dropdown values for the listing page.
func (s *ListingService) FilterOptions(ctx context.Context) (*domain.FilterOptions, error) {
	return s.oppRepo.FilterOptions(ctx)
}
