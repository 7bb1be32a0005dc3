// Package view is the presentation adapter: it enforces the boundary
// formatting contract (2dp rounding, timestamp layout, placeholders for
// optional fields) and renders identical aggregation results as structured
// JSON view models, chart payloads, or CSV.
package view

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimestampLayout is the boundary format for every rendered timestamp.
const TimestampLayout = "2006-01-02 15:04:05"

// Placeholders for absent optional fields. These are part of the boundary
// contract: absence never propagates as null into a rendered cell.
const (
	PlaceholderConfidence   = "N/A"
	PlaceholderResponseTime = "-"
)

// RoundUSD rounds a currency amount to 2 decimal places, half away from
// zero (42.567 → 42.57).
func RoundUSD(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// RoundPercent rounds a percentage to 2 decimal places.
func RoundPercent(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// USD renders a currency amount with exactly two decimals.
func USD(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// Percent renders a percentage with exactly two decimals.
func Percent(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// Timestamp renders a time in the boundary layout, in UTC.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Confidence renders an optional AI confidence as a percentage string, or
// the documented placeholder when absent.
func Confidence(v *float64) string {
	if v == nil {
		return PlaceholderConfidence
	}
	return decimal.NewFromFloat(*v * 100).StringFixed(2)
}

// ResponseTime renders an optional probe latency, or the placeholder.
func ResponseTime(ms *int) string {
	if ms == nil {
		return PlaceholderResponseTime
	}
	return decimal.NewFromInt(int64(*ms)).String()
}

// OptionalUSD renders an optional currency amount; absent values render as
// zero per the boundary contract for aggregate numerics.
func OptionalUSD(v *float64) string {
	if v == nil {
		return decimal.Zero.StringFixed(2)
	}
	return USD(*v)
}
