// Package scheduler manages the two background goroutines behind the live
// dashboard:
//  1. healthProbeLoop    – probes every monitored pipeline service on a
//     fixed cadence and refreshes the stored status records.
//  2. statsBroadcastLoop – pushes headline profit aggregates to WS clients.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/shadowlynx/monitor/internal/config"
	"github.com/shadowlynx/monitor/internal/service"
	"github.com/shadowlynx/monitor/internal/view"
	"github.com/shadowlynx/monitor/internal/ws"
)

// ──────────────────────────────────────────────────────────────────────────────
// WsHub interface — minimally required from the Hub
// ──────────────────────────────────────────────────────────────────────────────

// WsHub defines the broadcast operations the Scheduler needs from the
// WebSocket hub.  Declared here so the scheduler package does not depend on
// the hub implementation.
type WsHub interface {
	BroadcastDashboardStats(msg ws.DashboardStatsMessage)
	ConnectedCount() int
}

// ──────────────────────────────────────────────────────────────────────────────
// Scheduler
// ──────────────────────────────────────────────────────────────────────────────

// Scheduler runs the background loops.  Call Start(ctx) once from main();
// cancel the context to shut it down gracefully.
type Scheduler struct {
	healthSvc *service.HealthService
	statsSvc  *service.StatsService
	hub       WsHub
	cfg       *config.Config
	logger    *slog.Logger
}

// NewScheduler creates a Scheduler.
func NewScheduler(
	healthSvc *service.HealthService,
	statsSvc *service.StatsService,
	hub WsHub,
	cfg *config.Config,
	logger *slog.Logger,
) *Scheduler {
	return &Scheduler{
		healthSvc: healthSvc,
		statsSvc:  statsSvc,
		hub:       hub,
		cfg:       cfg,
		logger:    logger,
	}
}

// Start launches the background goroutines.  It returns immediately; all
// loops run until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	go s.healthProbeLoop(ctx)
	go s.statsBroadcastLoop(ctx)
	s.logger.Info("scheduler started",
		"probe_interval", s.cfg.Health.ProbeInterval,
		"broadcast_interval", s.cfg.Stats.BroadcastInterval)
}

// ──────────────────────────────────────────────────────────────────────────────
// healthProbeLoop
// ──────────────────────────────────────────────────────────────────────────────

// healthProbeLoop runs one probe cycle per tick.  The cycle itself never
// fails: a dead service becomes an offline record and the loop carries on.
// An immediate first cycle runs at startup so the dashboard is not blank for
// one full interval.
func (s *Scheduler) healthProbeLoop(ctx context.Context) {
	defer s.recoverAndLog("healthProbeLoop")

	s.healthSvc.ProbeAll(ctx)

	ticker := time.NewTicker(s.cfg.Health.ProbeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("healthProbeLoop: shutting down")
			return
		case <-ticker.C:
			s.healthSvc.ProbeAll(ctx)
		}
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// statsBroadcastLoop
// ──────────────────────────────────────────────────────────────────────────────

// statsBroadcastLoop pushes the headline aggregates to all connected WS
// clients on the configured interval.  Ticks with no clients are skipped to
// avoid pointless aggregation queries.
func (s *Scheduler) statsBroadcastLoop(ctx context.Context) {
	defer s.recoverAndLog("statsBroadcastLoop")

	ticker := time.NewTicker(s.cfg.Stats.BroadcastInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("statsBroadcastLoop: shutting down")
			return
		case <-ticker.C:
			s.broadcastStats(ctx)
		}
	}
}

// broadcastStats is the inner body of statsBroadcastLoop, extracted so the
// defer/recover in the loop catches panics correctly.
func (s *Scheduler) broadcastStats(ctx context.Context) {
	if s.hub == nil || s.hub.ConnectedCount() == 0 {
		return
	}

	summary, err := s.statsSvc.Summarize(ctx, 0)
	if err != nil {
		s.logger.Warn("statsBroadcastLoop: summary failed", "err", err)
		return
	}
	rate, err := s.statsSvc.SuccessRate(ctx)
	if err != nil {
		s.logger.Warn("statsBroadcastLoop: success rate failed", "err", err)
		return
	}

	s.hub.BroadcastDashboardStats(ws.DashboardStatsMessage{
		TotalProfitUSD:    view.USD(summary.TotalProfitUSD),
		TotalTransactions: summary.TotalTransactions,
		AvgProfitPerTrade: view.USD(summary.AvgProfitPerTrade),
		SuccessRate:       view.Percent(rate),
		Timestamp:         time.Now().UTC(),
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Panic recovery
// ──────────────────────────────────────────────────────────────────────────────

// recoverAndLog is deferred inside each goroutine to catch unexpected panics,
// log them, and allow the scheduler to continue running.
func (s *Scheduler) recoverAndLog(loop string) {
	if r := recover(); r != nil {
		s.logger.Error("PANIC recovered in scheduler loop",
			"loop", loop, "panic", r)
	}
}
