package domain

import (
	"context"
	"errors"
	"fmt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Sentinel errors — compare with errors.Is()
// ──────────────────────────────────────────────────────────────────────────────

// Lookup errors
var (
	// ErrOpportunityNotFound is returned when no opportunity matches the id.
	ErrOpportunityNotFound = errors.New("opportunity not found")

	// ErrExecutionNotFound is returned when an opportunity has no execution.
	ErrExecutionNotFound = errors.New("execution not found")

	// ErrAnalysisNotFound is returned when no AI analysis matches the criteria.
	ErrAnalysisNotFound = errors.New("analysis not found")
)

// Validation errors
var (
	// ErrInvalidPage is returned when the requested page number is ≤ 0.
	ErrInvalidPage = errors.New("page must be a positive integer")

	// ErrInvalidMinProfit is returned when min_profit cannot be parsed as a
	// decimal number.
	ErrInvalidMinProfit = errors.New("min_profit must be a decimal number")

	// ErrInvalidNetwork is returned when the network filter is not a known chain.
	ErrInvalidNetwork = errors.New("network must be BSC or Polygon")

	// ErrInvalidTimeframe is returned for a market-insights timeframe outside
	// {24h, 7d, 30d}.
	ErrInvalidTimeframe = errors.New("timeframe must be one of 24h, 7d, 30d")

	// ErrInvalidTimeperiod is returned for a strategy-optimization period
	// outside {7d, 30d, 90d}.
	ErrInvalidTimeperiod = errors.New("timeperiod must be one of 7d, 30d, 90d")

	// ErrInvalidStrategyParams is returned when optimization parameters fail
	// validation. Wrap with %w and a field-specific message.
	ErrInvalidStrategyParams = errors.New("invalid strategy parameters")
)

// Availability errors
var (
	// ErrDataUnavailable is returned when the data store is unreachable or a
	// query exceeded its configured timeout. Listing and aggregation callers
	// surface this; the health aggregator converts it to an offline record.
	ErrDataUnavailable = errors.New("data store unavailable")

	// ErrAgentUnavailable is returned when the external AI agent cannot be
	// reached to accept a trigger action.
	ErrAgentUnavailable = errors.New("ai agent unavailable")
)

// ──────────────────────────────────────────────────────────────────────────────
// Helper predicates
// ──────────────────────────────────────────────────────────────────────────────

// notFoundErrors collects all "entity not found" sentinels so that
// IsNotFound stays in sync automatically.
var notFoundErrors = []error{
	ErrOpportunityNotFound,
	ErrExecutionNotFound,
	ErrAnalysisNotFound,
}

// IsNotFound returns true when err (or any error in its chain) is one of the
// domain "not found" errors. Use this instead of comparing error values
// directly when translating to HTTP 404 responses.
func IsNotFound(err error) bool {
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsValidation returns true for request-shaped errors that map to HTTP 400.
func IsValidation(err error) bool {
	validationErrors := []error{
		ErrInvalidPage,
		ErrInvalidMinProfit,
		ErrInvalidNetwork,
		ErrInvalidTimeframe,
		ErrInvalidTimeperiod,
		ErrInvalidStrategyParams,
	}
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsUnavailable returns true for store/agent reachability errors that map to
// HTTP 503. Context deadline expiry at the store boundary counts.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrDataUnavailable) ||
		errors.Is(err, ErrAgentUnavailable) ||
		errors.Is(err, context.DeadlineExceeded)
}

// WrapUnavailable tags a low-level store error as a data-availability
// failure while preserving the chain for logging.
func WrapUnavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrDataUnavailable, err)
}
