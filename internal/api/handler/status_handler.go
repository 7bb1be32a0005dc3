package handler

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shadowlynx/monitor/internal/domain"
	"github.com/shadowlynx/monitor/internal/service"
	"github.com/shadowlynx/monitor/internal/view"
	"github.com/shadowlynx/monitor/internal/ws"
)

// StatusHandler serves the liveness and system-health endpoints.
type StatusHandler struct {
	healthSvc *service.HealthService
	hub       *ws.Hub
}

// NewStatusHandler creates a StatusHandler. hub may be nil.
func NewStatusHandler(healthSvc *service.HealthService, hub *ws.Hub) *StatusHandler {
	return &StatusHandler{healthSvc: healthSvc, hub: hub}
}

// Healthz godoc
// GET /healthz — liveness for this monitor process itself, independent of
// the monitored pipeline services. Always 200 while the process serves.
func (h *StatusHandler) Healthz(c *gin.Context) {
	payload := gin.H{
		"status":         "ok",
		"uptime_seconds": int(h.healthSvc.Uptime().Seconds()),
		"time":           time.Now().UTC().Format(time.RFC3339),
	}
	if h.hub != nil {
		payload["ws_clients"] = h.hub.ConnectedCount()
	}
	c.JSON(http.StatusOK, payload)
}

// SystemStatus godoc
// GET /api/status — latest stored record per monitored service plus the
// overall rollup. Reads the store, not the in-memory snapshot, so records
// survive restarts.
func (h *StatusHandler) SystemStatus(c *gin.Context) {
	snap, err := h.healthSvc.SystemHealth(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}

	records := make([]domain.ServiceStatusRecord, 0, len(snap.Services))
	for _, rec := range snap.Services {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].ServiceName < records[j].ServiceName
	})

	respondSuccess(c, http.StatusOK, gin.H{
		"overall":    snap.Overall,
		"services":   view.StatusRows(records),
		"checked_at": view.Timestamp(snap.CheckedAt),
	})
}
