// Package domain defines the core entities for the ShadowLynx arbitrage
// monitoring system: opportunities, executions, AI analyses, service health
// records and price samples.
package domain

import (
	"time"
)

// ──────────────────────────────────────────────────────────────────────────────
// Types & constants
// ──────────────────────────────────────────────────────────────────────────────

// Network identifies the blockchain an opportunity was detected on.
type Network string

const (
	NetworkBSC     Network = "BSC"
	NetworkPolygon Network = "Polygon"
)

// IsValid returns true if the network is a recognised chain.
func (n Network) IsValid() bool {
	return n == NetworkBSC || n == NetworkPolygon
}

// LifecycleState is the derived state of an opportunity/execution pair.
type LifecycleState string

const (
	// StateIdentified — detected, no execution attempt recorded yet.
	StateIdentified LifecycleState = "identified"
	// StateExecuting — an execution exists and is still pending.
	StateExecuting LifecycleState = "executing"
	// StateSettled — execution succeeded; is_executed is true.
	StateSettled LifecycleState = "settled"
	// StateFailed — execution failed; is_executed stays false.
	StateFailed LifecycleState = "failed"
)

// ──────────────────────────────────────────────────────────────────────────────
// Opportunity
// ──────────────────────────────────────────────────────────────────────────────

// Opportunity is a detected price discrepancy between two DEX venues for a
// token pair. Rows are appended by the external scanner; this service only
// reads them. is_executed transitions false→true at most once and never
// reverts.
type Opportunity struct {
	ID                     int64     `json:"id"                       db:"id"`
	TokenPair              string    `json:"token_pair"               db:"token_pair"`
	SourceDEX              string    `json:"source_dex"               db:"source_dex"`
	TargetDEX              string    `json:"target_dex"               db:"target_dex"`
	SourcePrice            float64   `json:"source_price"             db:"source_price"`
	TargetPrice            float64   `json:"target_price"             db:"target_price"`
	PriceDifferencePercent float64   `json:"price_difference_percent" db:"price_difference_percent"`
	EstimatedProfitUSD     float64   `json:"estimated_profit_usd"     db:"estimated_profit_usd"`
	Network                Network   `json:"network"                  db:"network"`
	FlashLoanProvider      *string   `json:"flash_loan_provider"      db:"flash_loan_provider"`
	LoanAmount             *float64  `json:"loan_amount"              db:"loan_amount"`
	AIConfidence           *float64  `json:"ai_confidence"            db:"ai_confidence"`
	CreatedAt              time.Time `json:"created_at"               db:"created_at"`
	IsExecuted             bool      `json:"is_executed"              db:"is_executed"`
}

// Lifecycle derives the state machine position from the opportunity and its
// at-most-one execution. exec may be nil.
func (o *Opportunity) Lifecycle(exec *Execution) LifecycleState {
	if exec == nil {
		return StateIdentified
	}
	switch exec.Status {
	case ExecStatusSuccess:
		return StateSettled
	case ExecStatusFailed:
		return StateFailed
	default:
		return StateExecuting
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// OpportunityFilter
// ──────────────────────────────────────────────────────────────────────────────

// OpportunityFilter holds the optional listing predicates. Zero-value fields
// impose no constraint. MinProfit is inclusive (estimated_profit_usd ≥ it).
type OpportunityFilter struct {
	Network   Network
	TokenPair string
	SourceDEX string
	TargetDEX string
	MinProfit *float64
}

// IsZero returns true when no predicate is set.
func (f OpportunityFilter) IsZero() bool {
	return f.Network == "" && f.TokenPair == "" && f.SourceDEX == "" &&
		f.TargetDEX == "" && f.MinProfit == nil
}

// Matches reports whether the opportunity satisfies every set predicate.
// The repository applies the same predicates in SQL; this is used by tests
// and by in-memory checks.
func (f OpportunityFilter) Matches(o *Opportunity) bool {
	if f.Network != "" && o.Network != f.Network {
		return false
	}
	if f.TokenPair != "" && o.TokenPair != f.TokenPair {
		return false
	}
	if f.SourceDEX != "" && o.SourceDEX != f.SourceDEX {
		return false
	}
	if f.TargetDEX != "" && o.TargetDEX != f.TargetDEX {
		return false
	}
	if f.MinProfit != nil && o.EstimatedProfitUSD < *f.MinProfit {
		return false
	}
	return true
}

// FilterOptions holds the distinct values available for the listing
// dropdowns. DEXes is the union of source and target venues.
type FilterOptions struct {
	Networks   []string `json:"networks"`
	DEXes      []string `json:"dexes"`
	TokenPairs []string `json:"token_pairs"`
}
