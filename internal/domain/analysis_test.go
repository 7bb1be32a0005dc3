package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/shadowlynx/monitor/internal/domain"
)

func TestDecodeMarketContent(t *testing.T) {
	a := &domain.AIAnalysis{
		Kind: domain.AnalysisKindMarket,
		Content: json.RawMessage(`{
			"market_summary": "spread widening on BSC",
			"tokens_analyzed": ["WBNB", "CAKE"],
			"recommendations": ["watch pancakeswap/biswap pairs"],
			"timeframe": "24h"
		}`),
	}

	c, ok := a.DecodeMarket()
	if !ok {
		t.Fatal("DecodeMarket failed on well-formed content")
	}
	if c.Timeframe != "24h" {
		t.Errorf("Timeframe = %q, want 24h", c.Timeframe)
	}
	if len(c.TokensAnalyzed) != 2 {
		t.Errorf("TokensAnalyzed = %v, want 2 entries", c.TokensAnalyzed)
	}
}

// Malformed stored content must degrade to an omitted section, never an
// error that would abort rendering the page.
func TestDecodeToleratesMalformedContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"truncated json", `{"market_summary": "cut off`},
		{"wrong shape", `[1, 2, 3]`},
		{"empty", ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &domain.AIAnalysis{
				Kind:    domain.AnalysisKindMarket,
				Content: json.RawMessage(tt.content),
			}
			if c, ok := a.DecodeMarket(); ok || c != nil {
				t.Errorf("DecodeMarket = (%v, %v), want (nil, false)", c, ok)
			}
		})
	}
}

func TestDecodeRejectsKindMismatch(t *testing.T) {
	a := &domain.AIAnalysis{
		Kind:    domain.AnalysisKindStrategy,
		Content: json.RawMessage(`{"rationale": "looks profitable"}`),
	}
	if _, ok := a.DecodeOpportunity(); ok {
		t.Error("DecodeOpportunity succeeded on a strategy-kind analysis")
	}
}
