package domain

import (
	"encoding/json"
	"time"
)

// ──────────────────────────────────────────────────────────────────────────────
// AnalysisKind
// ──────────────────────────────────────────────────────────────────────────────

// AnalysisKind tags the variant of an AI analysis payload.
type AnalysisKind string

const (
	AnalysisKindOpportunity AnalysisKind = "opportunity"
	AnalysisKindMarket      AnalysisKind = "market"
	AnalysisKindStrategy    AnalysisKind = "strategy"
)

// IsValid returns true if the kind is one of the known variants.
func (k AnalysisKind) IsValid() bool {
	return k == AnalysisKindOpportunity || k == AnalysisKindMarket || k == AnalysisKindStrategy
}

// ──────────────────────────────────────────────────────────────────────────────
// AIAnalysis
// ──────────────────────────────────────────────────────────────────────────────

// AIAnalysis is a stored output of the external advisory agent, attached to
// an opportunity, the market as a whole, or a strategy configuration.
// Rows are immutable after creation. Content is a tagged union keyed by
// Kind; decode it with one of the Decode* helpers.
type AIAnalysis struct {
	ID                     int64           `json:"id"                      db:"id"`
	Kind                   AnalysisKind    `json:"kind"                    db:"kind"`
	OpportunityID          *int64          `json:"opportunity_id"          db:"opportunity_id"`
	RiskScore              *float64        `json:"risk_score"              db:"risk_score"`
	SuccessProbability     *float64        `json:"success_probability"     db:"success_probability"`
	StrategyRecommendation *string         `json:"strategy_recommendation" db:"strategy_recommendation"`
	ProfitabilityImpact    *string         `json:"profitability_impact"    db:"profitability_impact"`
	Content                json.RawMessage `json:"content"                 db:"content"`
	Timestamp              time.Time       `json:"timestamp"               db:"timestamp"`
}

// OpportunityContent is the Kind=opportunity payload variant.
type OpportunityContent struct {
	Rationale string `json:"rationale"`
}

// MarketContent is the Kind=market payload variant.
type MarketContent struct {
	MarketSummary          string            `json:"market_summary"`
	TokensAnalyzed         []string          `json:"tokens_analyzed"`
	ArbitrageOpportunities []json.RawMessage `json:"arbitrage_opportunities"`
	Recommendations        []string          `json:"recommendations"`
	Timeframe              string            `json:"timeframe"`
}

// StrategyContent is the Kind=strategy payload variant.
type StrategyContent struct {
	OptimizedParameters map[string]json.RawMessage `json:"optimized_parameters"`
	Reasoning           map[string]string          `json:"reasoning"`
	ExpectedImprovement string                     `json:"expected_improvement"`
	BasedOnPeriod       string                     `json:"based_on_period"`
}

// DecodeOpportunity decodes the content payload for Kind=opportunity.
// A malformed or empty payload returns (nil, false): callers render the
// section as omitted rather than failing the page.
func (a *AIAnalysis) DecodeOpportunity() (*OpportunityContent, bool) {
	if a.Kind != AnalysisKindOpportunity || len(a.Content) == 0 {
		return nil, false
	}
	var c OpportunityContent
	if err := json.Unmarshal(a.Content, &c); err != nil {
		return nil, false
	}
	return &c, true
}

// DecodeMarket decodes the content payload for Kind=market.
func (a *AIAnalysis) DecodeMarket() (*MarketContent, bool) {
	if a.Kind != AnalysisKindMarket || len(a.Content) == 0 {
		return nil, false
	}
	var c MarketContent
	if err := json.Unmarshal(a.Content, &c); err != nil {
		return nil, false
	}
	return &c, true
}

// DecodeStrategy decodes the content payload for Kind=strategy.
func (a *AIAnalysis) DecodeStrategy() (*StrategyContent, bool) {
	if a.Kind != AnalysisKindStrategy || len(a.Content) == 0 {
		return nil, false
	}
	var c StrategyContent
	if err := json.Unmarshal(a.Content, &c); err != nil {
		return nil, false
	}
	return &c, true
}
