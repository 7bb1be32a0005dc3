package view

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/shadowlynx/monitor/internal/domain"
)

// opportunityCSVHeader is the fixed export column order. Changing it breaks
// downstream spreadsheets; treat it as a wire format.
var opportunityCSVHeader = []string{
	"id",
	"token_pair",
	"source_dex",
	"target_dex",
	"price_difference_percent",
	"network",
	"estimated_profit_usd",
	"ai_confidence",
	"created_at",
	"is_executed",
}

// WriteOpportunitiesCSV streams the filtered listing as CSV. Formatting
// follows the same boundary contract as the JSON rows: 2dp numerics, N/A
// for absent confidence, boundary timestamp layout.
func WriteOpportunitiesCSV(w io.Writer, opps []*domain.Opportunity) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(opportunityCSVHeader); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}

	for _, o := range opps {
		record := []string{
			strconv.FormatInt(o.ID, 10),
			o.TokenPair,
			o.SourceDEX,
			o.TargetDEX,
			Percent(o.PriceDifferencePercent),
			string(o.Network),
			USD(o.EstimatedProfitUSD),
			Confidence(o.AIConfidence),
			Timestamp(o.CreatedAt),
			strconv.FormatBool(o.IsExecuted),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("csv: write row %d: %w", o.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// executionCSVHeader is the fixed column order for the executions export,
// execution fields interleaved with the joined opportunity context. Same
// wire-format rule as the opportunity header.
var executionCSVHeader = []string{
	"execution_id",
	"opportunity_id",
	"token_pair",
	"source_dex",
	"target_dex",
	"transaction_hash",
	"status",
	"estimated_profit_usd",
	"actual_profit_usd",
	"gas_cost_usd",
	"net_profit_usd",
	"network",
	"flash_loan_fee",
	"executed_at",
	"execution_time_ms",
	"error_message",
}

// WriteExecutionsCSV streams the joined execution set as CSV. Absent cost
// and profit figures render as 0.00; an absent latency or error message
// renders as an empty cell.
func WriteExecutionsCSV(w io.Writer, execs []*domain.ExecutionWithOpportunity) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(executionCSVHeader); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}

	for _, e := range execs {
		var latency, errMsg string
		if e.ExecutionTimeMs != nil {
			latency = strconv.Itoa(*e.ExecutionTimeMs)
		}
		if e.ErrorMessage != nil {
			errMsg = *e.ErrorMessage
		}

		record := []string{
			strconv.FormatInt(e.ID, 10),
			strconv.FormatInt(e.OpportunityID, 10),
			e.TokenPair,
			e.SourceDEX,
			e.TargetDEX,
			e.TransactionHash,
			string(e.Status),
			USD(e.EstimatedProfitUSD),
			OptionalUSD(e.ActualProfitUSD),
			OptionalUSD(e.GasCostUSD),
			OptionalUSD(e.NetProfitUSD),
			string(e.Network),
			OptionalUSD(e.FlashLoanFee),
			Timestamp(e.ExecutedAt),
			latency,
			errMsg,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("csv: write row %d: %w", e.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
