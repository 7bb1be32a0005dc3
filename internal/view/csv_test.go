package view_test

import (
	"bytes"
	"encoding/csv"
	"reflect"
	"testing"
	"time"

	"github.com/shadowlynx/monitor/internal/domain"
	"github.com/shadowlynx/monitor/internal/view"
)

func TestWriteOpportunitiesCSVColumnOrder(t *testing.T) {
	conf := 0.91
	opps := []*domain.Opportunity{
		{
			ID:                     7,
			TokenPair:              "WBNB/BUSD",
			SourceDEX:              "pancakeswap",
			TargetDEX:              "biswap",
			PriceDifferencePercent: 1.234,
			Network:                domain.NetworkBSC,
			EstimatedProfitUSD:     42.567,
			AIConfidence:           &conf,
			CreatedAt:              time.Date(2025, 6, 1, 9, 15, 0, 0, time.UTC),
			IsExecuted:             true,
		},
		{
			ID:        8,
			TokenPair: "WMATIC/USDC",
			SourceDEX: "quickswap",
			TargetDEX: "sushiswap",
			Network:   domain.NetworkPolygon,
			CreatedAt: time.Date(2025, 6, 1, 9, 16, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	if err := view.WriteOpportunitiesCSV(&buf, opps); err != nil {
		t.Fatalf("WriteOpportunitiesCSV: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("re-reading CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("records = %d, want header + 2 rows", len(records))
	}

	wantHeader := []string{
		"id", "token_pair", "source_dex", "target_dex",
		"price_difference_percent", "network", "estimated_profit_usd",
		"ai_confidence", "created_at", "is_executed",
	}
	if !reflect.DeepEqual(records[0], wantHeader) {
		t.Errorf("header = %v, want %v", records[0], wantHeader)
	}

	row := records[1]
	if row[0] != "7" || row[6] != "42.57" || row[7] != "91.00" || row[8] != "2025-06-01 09:15:00" {
		t.Errorf("first row = %v, wrong formatting", row)
	}

	// Absent confidence renders the placeholder, not an empty cell.
	if records[2][7] != "N/A" {
		t.Errorf("missing confidence = %q, want N/A", records[2][7])
	}
}

func TestWriteExecutionsCSVColumnOrder(t *testing.T) {
	actual, gas, net := 50.123, 7.891, 42.232
	ms := 850
	errMsg := "insufficient liquidity"
	execs := []*domain.ExecutionWithOpportunity{
		{
			Execution: domain.Execution{
				ID:              3,
				OpportunityID:   7,
				TransactionHash: "0xabc",
				Status:          domain.ExecStatusSuccess,
				ActualProfitUSD: &actual,
				GasCostUSD:      &gas,
				NetProfitUSD:    &net,
				ExecutionTimeMs: &ms,
				ExecutedAt:      time.Date(2025, 6, 1, 9, 20, 0, 0, time.UTC),
			},
			TokenPair:          "WBNB/BUSD",
			SourceDEX:          "pancakeswap",
			TargetDEX:          "biswap",
			Network:            domain.NetworkBSC,
			EstimatedProfitUSD: 42.567,
		},
		{
			Execution: domain.Execution{
				ID:            4,
				OpportunityID: 8,
				Status:        domain.ExecStatusFailed,
				ErrorMessage:  &errMsg,
				ExecutedAt:    time.Date(2025, 6, 1, 9, 21, 0, 0, time.UTC),
			},
			TokenPair: "WMATIC/USDC",
			SourceDEX: "quickswap",
			TargetDEX: "sushiswap",
			Network:   domain.NetworkPolygon,
		},
	}

	var buf bytes.Buffer
	if err := view.WriteExecutionsCSV(&buf, execs); err != nil {
		t.Fatalf("WriteExecutionsCSV: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("re-reading CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("records = %d, want header + 2 rows", len(records))
	}

	wantHeader := []string{
		"execution_id", "opportunity_id", "token_pair", "source_dex",
		"target_dex", "transaction_hash", "status", "estimated_profit_usd",
		"actual_profit_usd", "gas_cost_usd", "net_profit_usd", "network",
		"flash_loan_fee", "executed_at", "execution_time_ms", "error_message",
	}
	if !reflect.DeepEqual(records[0], wantHeader) {
		t.Errorf("header = %v, want %v", records[0], wantHeader)
	}

	row := records[1]
	if row[0] != "3" || row[7] != "42.57" || row[10] != "42.23" || row[13] != "2025-06-01 09:20:00" || row[14] != "850" {
		t.Errorf("first row = %v, wrong formatting", row)
	}

	// A failed execution with no figures renders 0.00 costs, an empty
	// latency cell, and the recorded error message.
	failed := records[2]
	if failed[8] != "0.00" || failed[10] != "0.00" || failed[12] != "0.00" {
		t.Errorf("failed row costs = %v, want 0.00 placeholders", failed)
	}
	if failed[14] != "" || failed[15] != "insufficient liquidity" {
		t.Errorf("failed row tail = %v, wrong latency/error cells", failed)
	}
}

func TestWriteExecutionsCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := view.WriteExecutionsCSV(&buf, nil); err != nil {
		t.Fatalf("WriteExecutionsCSV: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("re-reading CSV: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("records = %d, want header only", len(records))
	}
}

func TestWriteOpportunitiesCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := view.WriteOpportunitiesCSV(&buf, nil); err != nil {
		t.Fatalf("WriteOpportunitiesCSV: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("re-reading CSV: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("records = %d, want header only", len(records))
	}
}
