package service_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/shadowlynx/monitor/internal/config"
	"github.com/shadowlynx/monitor/internal/domain"
	"github.com/shadowlynx/monitor/internal/service"
)

// fakeStatusStore is an in-memory StatusStore.
type fakeStatusStore struct {
	mu      sync.Mutex
	records map[string]domain.ServiceStatusRecord
}

func newFakeStatusStore() *fakeStatusStore {
	return &fakeStatusStore{records: make(map[string]domain.ServiceStatusRecord)}
}

func (s *fakeStatusStore) Upsert(_ context.Context, rec *domain.ServiceStatusRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.ServiceName] = *rec
	return nil
}

func (s *fakeStatusStore) GetAll(_ context.Context) ([]*domain.ServiceStatusRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.ServiceStatusRecord, 0, len(s.records))
	for _, rec := range s.records {
		r := rec
		out = append(out, &r)
	}
	return out, nil
}

func (s *fakeStatusStore) ErrorCount(_ context.Context, name string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records[name].ErrorCount, nil
}

func healthCfg(services map[string]string) *config.Config {
	return &config.Config{
		Health: config.HealthConfig{
			Services:      services,
			ProbeInterval: 5 * time.Second,
			ProbeTimeout:  500 * time.Millisecond,
		},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestProbeAllHealthyService(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store := newFakeStatusStore()
	svc := service.NewHealthService(healthCfg(map[string]string{"scanner": srv.URL}), store, discardLogger())

	svc.ProbeAll(context.Background())

	snap := svc.Snapshot()
	rec, ok := snap.Services["scanner"]
	if !ok {
		t.Fatal("scanner missing from snapshot")
	}
	if rec.Status != domain.ServiceOnline {
		t.Errorf("status = %q, want online", rec.Status)
	}
	if rec.ErrorCount != 0 {
		t.Errorf("error_count = %d, want 0", rec.ErrorCount)
	}
	if rec.ResponseTimeMs == nil {
		t.Error("response_time_ms missing on a successful probe")
	}
	if snap.Overall != domain.OverallHealthy {
		t.Errorf("overall = %q, want healthy", snap.Overall)
	}
}

// A failed probe yields an offline record with error_count incremented by
// exactly one per cycle, and the record is persisted.
func TestProbeAllUnreachableServiceIncrementsOnce(t *testing.T) {
	store := newFakeStatusStore()
	// Nothing listens on this address.
	svc := service.NewHealthService(
		healthCfg(map[string]string{"engine": "http://127.0.0.1:1/healthz"}),
		store, discardLogger())

	svc.ProbeAll(context.Background())
	svc.ProbeAll(context.Background())
	svc.ProbeAll(context.Background())

	rec := svc.Snapshot().Services["engine"]
	if rec.Status != domain.ServiceOffline {
		t.Errorf("status = %q, want offline", rec.Status)
	}
	if rec.ErrorCount != 3 {
		t.Errorf("error_count after 3 failed cycles = %d, want 3", rec.ErrorCount)
	}

	stored, _ := store.GetAll(context.Background())
	if len(stored) != 1 || stored[0].ErrorCount != 3 {
		t.Errorf("stored records = %+v, want one with error_count 3", stored)
	}
}

// A non-2xx answer from a liveness endpoint is a failed probe: the service
// is recorded offline, exactly like a connection failure.
func TestProbeAllNon2xxIsOffline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc := service.NewHealthService(healthCfg(map[string]string{"agent": srv.URL}), newFakeStatusStore(), discardLogger())
	svc.ProbeAll(context.Background())

	snap := svc.Snapshot()
	rec := snap.Services["agent"]
	if rec.Status != domain.ServiceOffline {
		t.Errorf("status = %q, want offline on HTTP 500", rec.Status)
	}
	if rec.ErrorCount != 1 {
		t.Errorf("error_count = %d, want 1", rec.ErrorCount)
	}
	if snap.Overall != domain.OverallDegraded {
		t.Errorf("overall = %q, want degraded", snap.Overall)
	}
}

// One dead service never aborts the cycle for the others.
func TestProbeAllIsolatesFailures(t *testing.T) {
	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer healthy.Close()

	svc := service.NewHealthService(healthCfg(map[string]string{
		"scanner": healthy.URL,
		"engine":  "http://127.0.0.1:1/healthz",
	}), newFakeStatusStore(), discardLogger())

	svc.ProbeAll(context.Background())

	snap := svc.Snapshot()
	if snap.Services["scanner"].Status != domain.ServiceOnline {
		t.Errorf("scanner = %q, want online despite engine being down", snap.Services["scanner"].Status)
	}
	if snap.Services["engine"].Status != domain.ServiceOffline {
		t.Errorf("engine = %q, want offline", snap.Services["engine"].Status)
	}
	if snap.Overall != domain.OverallDegraded {
		t.Errorf("overall = %q, want degraded", snap.Overall)
	}
}

// recordingBroadcaster captures pushed snapshots.
type recordingBroadcaster struct {
	mu    sync.Mutex
	snaps []domain.HealthSnapshot
}

func (b *recordingBroadcaster) BroadcastHealth(s domain.HealthSnapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.snaps = append(b.snaps, s)
}

func TestProbeAllBroadcastsSnapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	b := &recordingBroadcaster{}
	svc := service.NewHealthService(healthCfg(map[string]string{"scanner": srv.URL}), newFakeStatusStore(), discardLogger())
	svc.SetBroadcaster(b)

	svc.ProbeAll(context.Background())

	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.snaps) != 1 {
		t.Fatalf("broadcasts = %d, want 1", len(b.snaps))
	}
	if b.snaps[0].Overall != domain.OverallHealthy {
		t.Errorf("broadcast overall = %q, want healthy", b.snaps[0].Overall)
	}
}
