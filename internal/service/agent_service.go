package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shadowlynx/monitor/internal/config"
	"github.com/shadowlynx/monitor/internal/domain"
)

// OpportunityGetter is the lookup the analyze trigger needs. Satisfied by
// repository.OpportunityRepository.
type OpportunityGetter interface {
	GetByID(ctx context.Context, id int64) (*domain.Opportunity, error)
}

// AnalysisStore is the read surface over stored analyses. Satisfied by
// repository.AnalysisRepository.
type AnalysisStore interface {
	GetByID(ctx context.Context, id int64) (*domain.AIAnalysis, error)
	ListRecent(ctx context.Context, kind domain.AnalysisKind, limit int) ([]*domain.AIAnalysis, error)
}

// ──────────────────────────────────────────────────────────────────────────────
// Request types
// ──────────────────────────────────────────────────────────────────────────────

// Allowed enum values for trigger parameters.
var (
	insightTimeframes   = map[string]bool{"24h": true, "7d": true, "30d": true}
	optimizePeriods     = map[string]bool{"7d": true, "30d": true, "90d": true}
	preferredNetworks   = map[string]bool{"BSC": true, "Polygon": true, "Either": true}
	executionStrategies = map[string]bool{"Conservative": true, "Balanced": true, "Aggressive": true}
)

// StrategyParams are the tunables forwarded to the optimizer.
type StrategyParams struct {
	MinProfitUSD      float64 `json:"min_profit_usd"`
	MaxSlippage       float64 `json:"max_slippage"`
	MinConfidence     float64 `json:"min_confidence"`
	MaxGasCost        float64 `json:"max_gas_cost"`
	PreferredNetwork  string  `json:"preferred_network"`
	ExecutionStrategy string  `json:"execution_strategy"`
}

// Validate checks the enum fields and numeric ranges.
func (p StrategyParams) Validate() error {
	if !preferredNetworks[p.PreferredNetwork] {
		return fmt.Errorf("%w: preferred_network must be BSC, Polygon or Either",
			domain.ErrInvalidStrategyParams)
	}
	if !executionStrategies[p.ExecutionStrategy] {
		return fmt.Errorf("%w: execution_strategy must be Conservative, Balanced or Aggressive",
			domain.ErrInvalidStrategyParams)
	}
	if p.MinConfidence < 0 || p.MinConfidence > 1 {
		return fmt.Errorf("%w: min_confidence must be within [0,1]",
			domain.ErrInvalidStrategyParams)
	}
	if p.MaxSlippage < 0 {
		return fmt.Errorf("%w: max_slippage must not be negative",
			domain.ErrInvalidStrategyParams)
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// AgentService
// ──────────────────────────────────────────────────────────────────────────────

// AgentService validates trigger actions and forwards them to the external
// AI/trading agent. The agent does the actual model calls and trades; this
// side only accepts, validates, and hands over. Stored analyses written
// back by the agent are readable through this service too.
type AgentService struct {
	client       *http.Client
	baseURL      string
	oppRepo      OpportunityGetter
	analysisRepo AnalysisStore
}

// NewAgentService creates an AgentService from the configured agent endpoint.
func NewAgentService(cfg *config.Config, oppRepo OpportunityGetter, analysisRepo AnalysisStore) *AgentService {
	return &AgentService{
		client:       &http.Client{Timeout: cfg.Agent.Timeout},
		baseURL:      cfg.Agent.BaseURL,
		oppRepo:      oppRepo,
		analysisRepo: analysisRepo,
	}
}

// GenerateMarketInsights forwards a market-insights request for the given
// token pairs. timeframe must be one of 24h, 7d, 30d.
func (s *AgentService) GenerateMarketInsights(ctx context.Context, tokenPairs []string, timeframe string) (json.RawMessage, error) {
	if !insightTimeframes[timeframe] {
		return nil, domain.ErrInvalidTimeframe
	}
	return s.forward(ctx, "/api/insights", map[string]interface{}{
		"token_pairs": tokenPairs,
		"timeframe":   timeframe,
	})
}

// AnalyzeOpportunity forwards an analysis request for one opportunity.
// Returns ErrOpportunityNotFound when the id has no match; the caller
// surfaces that without aborting anything else.
func (s *AgentService) AnalyzeOpportunity(ctx context.Context, opportunityID int64) (json.RawMessage, error) {
	opp, err := s.oppRepo.GetByID(ctx, opportunityID)
	if err != nil {
		return nil, err
	}
	return s.forward(ctx, "/api/analyze", map[string]interface{}{
		"opportunity": opp,
	})
}

// OptimizeStrategy forwards a strategy-optimization request. timeperiod
// must be one of 7d, 30d, 90d; params are validated before forwarding.
func (s *AgentService) OptimizeStrategy(ctx context.Context, timeperiod string, params StrategyParams) (json.RawMessage, error) {
	if !optimizePeriods[timeperiod] {
		return nil, domain.ErrInvalidTimeperiod
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return s.forward(ctx, "/api/optimize", map[string]interface{}{
		"timeperiod": timeperiod,
		"params":     params,
	})
}

// RecentAnalyses lists the newest stored analyses, optionally restricted to
// one kind. An unknown kind string is a validation error.
func (s *AgentService) RecentAnalyses(ctx context.Context, kind string, limit int) ([]*domain.AIAnalysis, error) {
	k := domain.AnalysisKind(kind)
	if kind != "" && !k.IsValid() {
		return nil, fmt.Errorf("%w: unknown analysis kind %q",
			domain.ErrInvalidStrategyParams, kind)
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.analysisRepo.ListRecent(ctx, k, limit)
}

// GetAnalysis reads one stored analysis by id.
func (s *AgentService) GetAnalysis(ctx context.Context, id int64) (*domain.AIAnalysis, error) {
	return s.analysisRepo.GetByID(ctx, id)
}

// forward POSTs the payload to the agent and returns its raw JSON response.
// Transport failures and non-2xx statuses map to ErrAgentUnavailable; the
// caller answers 503 and does not retry.
func (s *AgentService) forward(ctx context.Context, path string, payload interface{}) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("agent_service: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("agent_service: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("agent_service: %w: %w", domain.ErrAgentUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("agent_service: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("agent_service: %w: agent returned status %d",
			domain.ErrAgentUnavailable, resp.StatusCode)
	}
	if len(data) == 0 {
		data = []byte(fmt.Sprintf(`{"accepted":true,"at":%q}`, time.Now().UTC().Format(time.RFC3339)))
	}
	return json.RawMessage(data), nil
}
