package domain

import (
	"time"
)

// ExecStatus is the lifecycle state of an execution attempt.
// Transitions: pending → success | failed. No further transitions.
type ExecStatus string

const (
	ExecStatusPending ExecStatus = "pending"
	ExecStatusSuccess ExecStatus = "success"
	ExecStatusFailed  ExecStatus = "failed"
)

// IsValid returns true if the status is a recognised execution state.
func (s ExecStatus) IsValid() bool {
	return s == ExecStatusPending || s == ExecStatusSuccess || s == ExecStatusFailed
}

// IsTerminal returns true once the execution can no longer change.
func (s ExecStatus) IsTerminal() bool {
	return s == ExecStatusSuccess || s == ExecStatusFailed
}

// Execution is the recorded outcome of attempting to realise an
// opportunity's profit. Each opportunity maps to zero-or-one execution.
type Execution struct {
	ID              int64      `json:"id"                db:"id"`
	OpportunityID   int64      `json:"opportunity_id"    db:"opportunity_id"`
	TransactionHash string     `json:"transaction_hash"  db:"transaction_hash"`
	Status          ExecStatus `json:"status"            db:"status"`
	ActualProfitUSD *float64   `json:"actual_profit_usd" db:"actual_profit_usd"`
	GasCostUSD      *float64   `json:"gas_cost_usd"      db:"gas_cost_usd"`
	NetProfitUSD    *float64   `json:"net_profit_usd"    db:"net_profit_usd"`
	FlashLoanFee    *float64   `json:"flash_loan_fee"    db:"flash_loan_fee"`
	ExecutionTimeMs *int       `json:"execution_time_ms" db:"execution_time_ms"`
	ErrorMessage    *string    `json:"error_message"     db:"error_message"`
	ExecutedAt      time.Time  `json:"executed_at"       db:"executed_at"`
}

// ExecutionWithOpportunity is the joined read model used by the dashboard
// recent-executions table and the executions CSV export. Reading both sides
// in one SELECT guarantees the pair is never observed half-written.
type ExecutionWithOpportunity struct {
	Execution
	TokenPair          string  `json:"token_pair"           db:"token_pair"`
	SourceDEX          string  `json:"source_dex"           db:"source_dex"`
	TargetDEX          string  `json:"target_dex"           db:"target_dex"`
	Network            Network `json:"network"              db:"network"`
	EstimatedProfitUSD float64 `json:"estimated_profit_usd" db:"estimated_profit_usd"`
}

// ProfitSummary is the aggregate over successful executions in a window.
type ProfitSummary struct {
	TotalProfitUSD    float64 `json:"total_profit_usd"`
	TotalTransactions int     `json:"total_transactions"`
	AvgProfitPerTrade float64 `json:"avg_profit_per_trade"`
}

// DailyProfit is one day's aggregate for the profit history endpoint.
type DailyProfit struct {
	Date              time.Time `json:"date"                 db:"day"`
	TotalProfitUSD    float64   `json:"total_profit_usd"     db:"total_profit_usd"`
	TotalTransactions int       `json:"total_transactions"   db:"total_transactions"`
	SuccessRate       float64   `json:"success_rate"         db:"success_rate"`
	AvgProfitPerTrade float64   `json:"avg_profit_per_trade" db:"avg_profit_per_trade"`
}
