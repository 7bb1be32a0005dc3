package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shadowlynx/monitor/internal/domain"
)

// StatusRepository persists the latest health-check record per service.
// It is the only write path in this service: the probe loop upserts one row
// per service per cycle.
type StatusRepository struct {
	db      *sqlx.DB
	timeout time.Duration
}

// NewStatusRepository creates a new StatusRepository.
func NewStatusRepository(db *sqlx.DB, timeout time.Duration) *StatusRepository {
	return &StatusRepository{db: db, timeout: timeout}
}

// Upsert writes the record for rec.ServiceName, replacing any previous row.
// The whole record is written in one statement so a cancelled probe cycle
// never leaves a partial row.
func (r *StatusRepository) Upsert(ctx context.Context, rec *domain.ServiceStatusRecord) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO service_status
			(service_name, status, last_check, uptime_seconds, response_time_ms, error_count)
		VALUES
			(:service_name, :status, :last_check, :uptime_seconds, :response_time_ms, :error_count)
		ON CONFLICT (service_name) DO UPDATE SET
			status           = EXCLUDED.status,
			last_check       = EXCLUDED.last_check,
			uptime_seconds   = EXCLUDED.uptime_seconds,
			response_time_ms = EXCLUDED.response_time_ms,
			error_count      = EXCLUDED.error_count`, rec)
	if err != nil {
		return wrapErr("status_repo.Upsert", err)
	}
	return nil
}

// GetAll returns the latest record for every monitored service.
func (r *StatusRepository) GetAll(ctx context.Context) ([]*domain.ServiceStatusRecord, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var records []*domain.ServiceStatusRecord
	err := r.db.SelectContext(ctx, &records,
		`SELECT service_name, status, last_check, uptime_seconds, response_time_ms, error_count
		 FROM service_status ORDER BY service_name`)
	if err != nil {
		return nil, wrapErr("status_repo.GetAll", err)
	}
	return records, nil
}

// ErrorCount returns the stored error_count for a service, or 0 when the
// service has never been recorded. The prober increments from this value on
// failure so counts survive restarts.
func (r *StatusRepository) ErrorCount(ctx context.Context, serviceName string) (int, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT error_count FROM service_status WHERE service_name = $1`, serviceName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, wrapErr("status_repo.ErrorCount", err)
	}
	return count, nil
}
