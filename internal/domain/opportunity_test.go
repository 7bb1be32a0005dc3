package domain_test

import (
	"testing"

	"github.com/shadowlynx/monitor/internal/domain"
)

func TestLifecycleDerivation(t *testing.T) {
	opp := &domain.Opportunity{ID: 1}

	tests := []struct {
		name string
		exec *domain.Execution
		want domain.LifecycleState
	}{
		{"no execution", nil, domain.StateIdentified},
		{"pending execution", &domain.Execution{Status: domain.ExecStatusPending}, domain.StateExecuting},
		{"successful execution", &domain.Execution{Status: domain.ExecStatusSuccess}, domain.StateSettled},
		{"failed execution", &domain.Execution{Status: domain.ExecStatusFailed}, domain.StateFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := opp.Lifecycle(tt.exec); got != tt.want {
				t.Errorf("Lifecycle = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFilterMatches(t *testing.T) {
	opp := &domain.Opportunity{
		TokenPair:          "WBNB/BUSD",
		SourceDEX:          "pancakeswap",
		TargetDEX:          "biswap",
		Network:            domain.NetworkBSC,
		EstimatedProfitUSD: 42.50,
	}

	minLow, minExact, minHigh := 10.0, 42.50, 100.0

	tests := []struct {
		name   string
		filter domain.OpportunityFilter
		want   bool
	}{
		{"empty filter matches all", domain.OpportunityFilter{}, true},
		{"network match", domain.OpportunityFilter{Network: domain.NetworkBSC}, true},
		{"network mismatch", domain.OpportunityFilter{Network: domain.NetworkPolygon}, false},
		{"min profit below", domain.OpportunityFilter{MinProfit: &minLow}, true},
		{"min profit is inclusive", domain.OpportunityFilter{MinProfit: &minExact}, true},
		{"min profit above", domain.OpportunityFilter{MinProfit: &minHigh}, false},
		{"source dex mismatch", domain.OpportunityFilter{SourceDEX: "uniswap"}, false},
		{"all predicates match", domain.OpportunityFilter{
			Network:   domain.NetworkBSC,
			TokenPair: "WBNB/BUSD",
			SourceDEX: "pancakeswap",
			TargetDEX: "biswap",
			MinProfit: &minLow,
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(opp); got != tt.want {
				t.Errorf("Matches = %v, want %v", got, tt.want)
			}
		})
	}
}

// Adding a predicate can only shrink the matched set, never grow it.
func TestFilterMonotonicity(t *testing.T) {
	opps := []*domain.Opportunity{
		{Network: domain.NetworkBSC, EstimatedProfitUSD: 5},
		{Network: domain.NetworkBSC, EstimatedProfitUSD: 50},
		{Network: domain.NetworkPolygon, EstimatedProfitUSD: 50},
	}

	count := func(f domain.OpportunityFilter) int {
		n := 0
		for _, o := range opps {
			if f.Matches(o) {
				n++
			}
		}
		return n
	}

	min := 10.0
	base := domain.OpportunityFilter{Network: domain.NetworkBSC}
	narrowed := domain.OpportunityFilter{Network: domain.NetworkBSC, MinProfit: &min}

	if count(narrowed) > count(base) {
		t.Errorf("narrowed filter matched %d > base %d", count(narrowed), count(base))
	}
}
