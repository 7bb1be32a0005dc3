package domain

import (
	"time"
)

// ──────────────────────────────────────────────────────────────────────────────
// Service status
// ──────────────────────────────────────────────────────────────────────────────

// ServiceStatus is the reported state of one monitored service.
type ServiceStatus string

const (
	ServiceOnline   ServiceStatus = "online"
	ServiceOffline  ServiceStatus = "offline"
	ServiceDegraded ServiceStatus = "degraded"
)

// OverallHealth is the rollup over all monitored services.
type OverallHealth string

const (
	// OverallHealthy — every monitored service reports online.
	OverallHealthy OverallHealth = "healthy"
	// OverallDegraded — at least one service is offline or degraded.
	OverallDegraded OverallHealth = "degraded"
)

// ServiceStatusRecord is the latest health check result for one service.
// service_name is unique; the probe loop upserts in place. error_count is
// non-decreasing while a service stays offline; reset policy is external.
type ServiceStatusRecord struct {
	ServiceName    string        `json:"service_name"     db:"service_name"`
	Status         ServiceStatus `json:"status"           db:"status"`
	LastCheck      time.Time     `json:"last_check"       db:"last_check"`
	UptimeSeconds  *int          `json:"uptime_seconds"   db:"uptime_seconds"`
	ResponseTimeMs *int          `json:"response_time_ms" db:"response_time_ms"`
	ErrorCount     int           `json:"error_count"      db:"error_count"`
}

// HealthSnapshot is the full system-health view: one record per service plus
// the derived overall state.
type HealthSnapshot struct {
	Services  map[string]ServiceStatusRecord `json:"services"`
	Overall   OverallHealth                  `json:"overall"`
	CheckedAt time.Time                      `json:"checked_at"`
}

// Rollup derives the overall state: healthy iff every service is online.
// An empty service set is healthy (nothing is known to be broken).
func Rollup(services map[string]ServiceStatusRecord) OverallHealth {
	for _, rec := range services {
		if rec.Status != ServiceOnline {
			return OverallDegraded
		}
	}
	return OverallHealthy
}
