package service

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/shadowlynx/monitor/internal/config"
	"github.com/shadowlynx/monitor/internal/domain"
)

// HealthBroadcaster pushes a refreshed snapshot to connected dashboard
// clients. Declared here so the service does not import the ws package.
type HealthBroadcaster interface {
	BroadcastHealth(snapshot domain.HealthSnapshot)
}

// StatusStore is the persistence surface the aggregator needs. Satisfied by
// repository.StatusRepository.
type StatusStore interface {
	Upsert(ctx context.Context, rec *domain.ServiceStatusRecord) error
	GetAll(ctx context.Context) ([]*domain.ServiceStatusRecord, error)
	ErrorCount(ctx context.Context, serviceName string) (int, error)
}

// HealthService is the health aggregator. It owns the process-wide live
// status: the scheduler drives ProbeAll on its own cadence (independent of
// any user-triggered refresh), and Snapshot is the single accessor other
// code reads from. Probe failures become offline records; they are never
// propagated upward.
type HealthService struct {
	client      *http.Client
	services    map[string]string // name → liveness URL
	statusRepo  StatusStore
	logger      *slog.Logger
	broadcaster HealthBroadcaster

	mu       sync.RWMutex
	snapshot domain.HealthSnapshot
	started  time.Time
}

// NewHealthService constructs a HealthService from the configured service map.
func NewHealthService(cfg *config.Config, statusRepo StatusStore, logger *slog.Logger) *HealthService {
	return &HealthService{
		client:     &http.Client{Timeout: cfg.Health.ProbeTimeout},
		services:   cfg.Health.Services,
		statusRepo: statusRepo,
		logger:     logger,
		started:    time.Now().UTC(),
	}
}

// SetBroadcaster wires the optional WS push. May be nil.
func (s *HealthService) SetBroadcaster(b HealthBroadcaster) {
	s.broadcaster = b
}

// ──────────────────────────────────────────────────────────────────────────────
// Probing
// ──────────────────────────────────────────────────────────────────────────────

// ProbeAll runs one probe cycle over every configured service in parallel,
// persists the per-service records, refreshes the live snapshot, and
// broadcasts it. It never returns an error: a failed probe yields an
// offline record with error_count incremented from the prior stored value,
// and one service's failure leaves the others untouched.
func (s *HealthService) ProbeAll(ctx context.Context) {
	if len(s.services) == 0 {
		return
	}

	results := make(chan domain.ServiceStatusRecord, len(s.services))
	for name, url := range s.services {
		name, url := name, url
		go func() {
			results <- s.probeOne(ctx, name, url)
		}()
	}

	records := make(map[string]domain.ServiceStatusRecord, len(s.services))
	for range s.services {
		rec := <-results
		records[rec.ServiceName] = rec

		// Persist each record independently; a store hiccup must not abort
		// the cycle or lose the in-memory snapshot.
		if err := s.statusRepo.Upsert(ctx, &rec); err != nil {
			s.logger.Warn("health: persisting status record failed",
				"service", rec.ServiceName, "err", err)
		}
	}

	snapshot := domain.HealthSnapshot{
		Services:  records,
		Overall:   domain.Rollup(records),
		CheckedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.snapshot = snapshot
	s.mu.Unlock()

	if s.broadcaster != nil {
		s.broadcaster.BroadcastHealth(snapshot)
	}
}

// probeOne issues one liveness GET and converts the outcome into a status
// record. Any error (dial failure, timeout, non-2xx) maps to offline with
// error_count = prior + 1; counts are never reset on failure.
func (s *HealthService) probeOne(ctx context.Context, name, url string) domain.ServiceStatusRecord {
	now := time.Now().UTC()
	rec := domain.ServiceStatusRecord{
		ServiceName: name,
		LastCheck:   now,
		ErrorCount:  s.priorErrorCount(ctx, name),
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		rec.Status = domain.ServiceOffline
		rec.ErrorCount++
		return rec
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	elapsed := int(time.Since(start).Milliseconds())

	if err != nil {
		rec.Status = domain.ServiceOffline
		rec.ErrorCount++
		s.logger.Debug("health: probe failed", "service", name, "err", err)
		return rec
	}
	defer resp.Body.Close()

	rec.ResponseTimeMs = &elapsed
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// A liveness endpoint answering anything but 2xx is a failed probe,
		// same as not answering at all.
		rec.Status = domain.ServiceOffline
		rec.ErrorCount++
		return rec
	}
	rec.Status = domain.ServiceOnline
	return rec
}

// priorErrorCount prefers the live snapshot and falls back to the stored
// row so counts survive restarts.
func (s *HealthService) priorErrorCount(ctx context.Context, name string) int {
	s.mu.RLock()
	rec, ok := s.snapshot.Services[name]
	s.mu.RUnlock()
	if ok {
		return rec.ErrorCount
	}

	count, err := s.statusRepo.ErrorCount(ctx, name)
	if err != nil {
		return 0
	}
	return count
}

// ──────────────────────────────────────────────────────────────────────────────
// Accessors
// ──────────────────────────────────────────────────────────────────────────────

// Snapshot returns the live health view filled by the probe loop. Before
// the first cycle completes it is empty (and Overall reports healthy).
func (s *HealthService) Snapshot() domain.HealthSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// SystemHealth reads the latest stored record per service and derives the
// overall rollup. Used by the status API so records survive restarts.
func (s *HealthService) SystemHealth(ctx context.Context) (*domain.HealthSnapshot, error) {
	records, err := s.statusRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	services := make(map[string]domain.ServiceStatusRecord, len(records))
	for _, rec := range records {
		services[rec.ServiceName] = *rec
	}
	return &domain.HealthSnapshot{
		Services:  services,
		Overall:   domain.Rollup(services),
		CheckedAt: time.Now().UTC(),
	}, nil
}

// Uptime reports how long this monitor process has been running; the
// /healthz liveness payload includes it.
func (s *HealthService) Uptime() time.Duration {
	return time.Since(s.started)
}
