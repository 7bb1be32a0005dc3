package view_test

import (
	"testing"
	"time"

	"github.com/shadowlynx/monitor/internal/view"
)

func TestRoundUSDHalfAwayFromZero(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{42.567, 42.57},
		{42.564, 42.56},
		{42.565, 42.57},
		{-42.565, -42.57},
		{0, 0},
	}
	for _, tt := range tests {
		if got := view.RoundUSD(tt.in); got != tt.want {
			t.Errorf("RoundUSD(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestUSDStringAlwaysTwoDecimals(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{42.567, "42.57"},
		{42, "42.00"},
		{0.5, "0.50"},
		{0, "0.00"},
	}
	for _, tt := range tests {
		if got := view.USD(tt.in); got != tt.want {
			t.Errorf("USD(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTimestampLayout(t *testing.T) {
	ts := time.Date(2025, 6, 1, 14, 30, 5, 123456789, time.UTC)
	if got := view.Timestamp(ts); got != "2025-06-01 14:30:05" {
		t.Errorf("Timestamp = %q, want 2025-06-01 14:30:05", got)
	}

	// Non-UTC input renders in UTC.
	loc := time.FixedZone("UTC+3", 3*3600)
	if got := view.Timestamp(ts.In(loc)); got != "2025-06-01 14:30:05" {
		t.Errorf("Timestamp in zone = %q, want UTC rendering", got)
	}
}

func TestConfidencePlaceholder(t *testing.T) {
	if got := view.Confidence(nil); got != "N/A" {
		t.Errorf("Confidence(nil) = %q, want N/A", got)
	}
	c := 0.875
	if got := view.Confidence(&c); got != "87.50" {
		t.Errorf("Confidence(0.875) = %q, want 87.50", got)
	}
}

func TestResponseTimePlaceholder(t *testing.T) {
	if got := view.ResponseTime(nil); got != "-" {
		t.Errorf("ResponseTime(nil) = %q, want -", got)
	}
	ms := 42
	if got := view.ResponseTime(&ms); got != "42" {
		t.Errorf("ResponseTime(42) = %q, want 42", got)
	}
}

func TestOptionalUSDZeroPlaceholder(t *testing.T) {
	if got := view.OptionalUSD(nil); got != "0.00" {
		t.Errorf("OptionalUSD(nil) = %q, want 0.00", got)
	}
	v := 13.337
	if got := view.OptionalUSD(&v); got != "13.34" {
		t.Errorf("OptionalUSD(13.337) = %q, want 13.34", got)
	}
}
