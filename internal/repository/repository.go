// Package repository is the data-store adapter: thin sqlx wrappers around
// the PostgreSQL tables the external pipeline appends to. All methods are
// read-only except the service_status upsert used by the health prober.
//
// Every query runs under the configured query timeout; a deadline expiry is
// reported as domain.ErrDataUnavailable so handlers can answer 503 instead
// of retrying indefinitely.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shadowlynx/monitor/internal/domain"
)

// withTimeout derives the per-query context. A zero timeout disables the
// deadline (used by tests).
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}

// wrapErr tags timeouts as data-unavailable and annotates everything else
// with the failing operation.
func wrapErr(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.WrapUnavailable(op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
