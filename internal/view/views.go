package view

import (
	"github.com/shadowlynx/monitor/internal/domain"
)

// ──────────────────────────────────────────────────────────────────────────────
// Listing rows
// ──────────────────────────────────────────────────────────────────────────────

// OpportunityRow is the rendered listing row. All numerics follow the 2dp
// rounding contract; optional fields carry placeholders instead of nulls.
type OpportunityRow struct {
	ID                     int64  `json:"id"`
	TokenPair              string `json:"token_pair"`
	SourceDEX              string `json:"source_dex"`
	TargetDEX              string `json:"target_dex"`
	Network                string `json:"network"`
	PriceDifferencePercent string `json:"price_difference_percent"`
	EstimatedProfitUSD     string `json:"estimated_profit_usd"`
	AIConfidence           string `json:"ai_confidence"`
	CreatedAt              string `json:"created_at"`
	IsExecuted             bool   `json:"is_executed"`
}

// NewOpportunityRow renders one opportunity.
func NewOpportunityRow(o *domain.Opportunity) OpportunityRow {
	return OpportunityRow{
		ID:                     o.ID,
		TokenPair:              o.TokenPair,
		SourceDEX:              o.SourceDEX,
		TargetDEX:              o.TargetDEX,
		Network:                string(o.Network),
		PriceDifferencePercent: Percent(o.PriceDifferencePercent),
		EstimatedProfitUSD:     USD(o.EstimatedProfitUSD),
		AIConfidence:           Confidence(o.AIConfidence),
		CreatedAt:              Timestamp(o.CreatedAt),
		IsExecuted:             o.IsExecuted,
	}
}

// OpportunityRows renders a listing page.
func OpportunityRows(opps []*domain.Opportunity) []OpportunityRow {
	rows := make([]OpportunityRow, 0, len(opps))
	for _, o := range opps {
		rows = append(rows, NewOpportunityRow(o))
	}
	return rows
}

// ExecutionRow is the rendered dashboard execution row, joined with its
// opportunity.
type ExecutionRow struct {
	ID              int64  `json:"id"`
	OpportunityID   int64  `json:"opportunity_id"`
	TokenPair       string `json:"token_pair"`
	SourceDEX       string `json:"source_dex"`
	TargetDEX       string `json:"target_dex"`
	Network         string `json:"network"`
	Status          string `json:"status"`
	TransactionHash string `json:"transaction_hash"`
	NetProfitUSD    string `json:"net_profit_usd"`
	ExecutedAt      string `json:"executed_at"`
}

// ExecutionRows renders the dashboard execution table.
func ExecutionRows(execs []*domain.ExecutionWithOpportunity) []ExecutionRow {
	rows := make([]ExecutionRow, 0, len(execs))
	for _, e := range execs {
		rows = append(rows, ExecutionRow{
			ID:              e.ID,
			OpportunityID:   e.OpportunityID,
			TokenPair:       e.TokenPair,
			SourceDEX:       e.SourceDEX,
			TargetDEX:       e.TargetDEX,
			Network:         string(e.Network),
			Status:          string(e.Status),
			TransactionHash: e.TransactionHash,
			NetProfitUSD:    OptionalUSD(e.NetProfitUSD),
			ExecutedAt:      Timestamp(e.ExecutedAt),
		})
	}
	return rows
}

// ──────────────────────────────────────────────────────────────────────────────
// Aggregates
// ──────────────────────────────────────────────────────────────────────────────

// SummaryView is the rendered profit summary.
type SummaryView struct {
	TotalProfitUSD    string `json:"total_profit_usd"`
	TotalTransactions int    `json:"total_transactions"`
	AvgProfitPerTrade string `json:"avg_profit_per_trade"`
}

// NewSummaryView applies the rounding contract to a raw summary.
func NewSummaryView(s *domain.ProfitSummary) SummaryView {
	return SummaryView{
		TotalProfitUSD:    USD(s.TotalProfitUSD),
		TotalTransactions: s.TotalTransactions,
		AvgProfitPerTrade: USD(s.AvgProfitPerTrade),
	}
}

// DistributionView rounds each share at the boundary. Raw shares sum to
// 100; the rendered ones may drift by at most a rounding step.
func DistributionView(shares map[string]float64) map[string]string {
	out := make(map[string]string, len(shares))
	for k, v := range shares {
		out[k] = Percent(v)
	}
	return out
}

// StatusRow is the rendered per-service health record.
type StatusRow struct {
	ServiceName    string `json:"service_name"`
	Status         string `json:"status"`
	LastCheck      string `json:"last_check"`
	ResponseTimeMs string `json:"response_time_ms"`
	ErrorCount     int    `json:"error_count"`
}

// StatusRows renders a health snapshot's records sorted by the caller.
func StatusRows(records []domain.ServiceStatusRecord) []StatusRow {
	rows := make([]StatusRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, StatusRow{
			ServiceName:    rec.ServiceName,
			Status:         string(rec.Status),
			LastCheck:      Timestamp(rec.LastCheck),
			ResponseTimeMs: ResponseTime(rec.ResponseTimeMs),
			ErrorCount:     rec.ErrorCount,
		})
	}
	return rows
}

// ──────────────────────────────────────────────────────────────────────────────
// AI analyses
// ──────────────────────────────────────────────────────────────────────────────

// AnalysisView renders one stored analysis. Content sections that fail to
// decode are omitted (nil), never an error: a malformed payload must not
// abort the page.
type AnalysisView struct {
	ID                     int64                      `json:"id"`
	Kind                   string                     `json:"kind"`
	OpportunityID          *int64                     `json:"opportunity_id,omitempty"`
	RiskScore              *float64                   `json:"risk_score,omitempty"`
	SuccessProbability     *float64                   `json:"success_probability,omitempty"`
	StrategyRecommendation *string                    `json:"strategy_recommendation,omitempty"`
	ProfitabilityImpact    *string                    `json:"profitability_impact,omitempty"`
	Timestamp              string                     `json:"timestamp"`
	Opportunity            *domain.OpportunityContent `json:"opportunity_content,omitempty"`
	Market                 *domain.MarketContent      `json:"market_content,omitempty"`
	Strategy               *domain.StrategyContent    `json:"strategy_content,omitempty"`
}

// NewAnalysisView renders one analysis with its decoded variant.
func NewAnalysisView(a *domain.AIAnalysis) AnalysisView {
	v := AnalysisView{
		ID:                     a.ID,
		Kind:                   string(a.Kind),
		OpportunityID:          a.OpportunityID,
		RiskScore:              a.RiskScore,
		SuccessProbability:     a.SuccessProbability,
		StrategyRecommendation: a.StrategyRecommendation,
		ProfitabilityImpact:    a.ProfitabilityImpact,
		Timestamp:              Timestamp(a.Timestamp),
	}
	switch a.Kind {
	case domain.AnalysisKindOpportunity:
		v.Opportunity, _ = a.DecodeOpportunity()
	case domain.AnalysisKindMarket:
		v.Market, _ = a.DecodeMarket()
	case domain.AnalysisKindStrategy:
		v.Strategy, _ = a.DecodeStrategy()
	}
	return v
}
