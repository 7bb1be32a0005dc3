package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shadowlynx/monitor/internal/service"
	"github.com/shadowlynx/monitor/internal/view"
)

// Dashboard table sizes. The recent tables are previews; the full listing
// lives behind /api/opportunities.
const (
	recentOpportunityLimit = 10
	recentExecutionLimit   = 10
)

// StatsHandler serves the dashboard and profit aggregation endpoints.
type StatsHandler struct {
	statsSvc *service.StatsService
}

// NewStatsHandler creates a StatsHandler.
func NewStatsHandler(statsSvc *service.StatsService) *StatsHandler {
	return &StatsHandler{statsSvc: statsSvc}
}

// Dashboard godoc
// GET /api/dashboard?tokens=WBNB,WMATIC
//
// One payload feeds the whole landing page: headline summary, success rate,
// recent tables, distributions and the price chart. Each section comes from
// its own query; a failure in any of them fails the request as a whole so
// the page never renders half-stale numbers.
func (h *StatsHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	summary, err := h.statsSvc.Summarize(ctx, 0)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	rate, err := h.statsSvc.SuccessRate(ctx)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	recentOpps, err := h.statsSvc.RecentOpportunities(ctx, recentOpportunityLimit)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	recentExecs, err := h.statsSvc.RecentExecutions(ctx, recentExecutionLimit)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	networkDist, err := h.statsSvc.DistributionBy(ctx, "network")
	if err != nil {
		respondDomainError(c, err)
		return
	}
	dexDist, err := h.statsSvc.DistributionBy(ctx, "dex")
	if err != nil {
		respondDomainError(c, err)
		return
	}

	var tokens []string
	if raw := c.Query("tokens"); raw != "" {
		tokens = strings.Split(raw, ",")
	}
	series, err := h.statsSvc.PriceSeries(ctx, tokens)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{
		"summary":              view.NewSummaryView(summary),
		"success_rate":         view.Percent(rate),
		"recent_opportunities": view.OpportunityRows(recentOpps),
		"recent_executions":    view.ExecutionRows(recentExecs),
		"network_distribution": view.DistributionView(networkDist),
		"dex_distribution":     view.DistributionView(dexDist),
		"price_chart":          view.BuildChart(series),
	})
}

// Profits godoc
// GET /api/profits?days=30
func (h *StatsHandler) Profits(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	history, err := h.statsSvc.ProfitHistory(c.Request.Context(), days)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	summary, err := h.statsSvc.Summarize(c.Request.Context(), 0)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{
		"summary": view.NewSummaryView(summary),
		"daily":   history,
	})
}

// ExportCSV godoc
// GET /api/export/executions.csv?days=30 — executions joined with their
// opportunities over the trailing window, streamed as an attachment.
func (h *StatsHandler) ExportCSV(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	execs, err := h.statsSvc.ExportExecutions(c.Request.Context(), days)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	filename := "executions_" + time.Now().UTC().Format("20060102_150405") + ".csv"
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(http.StatusOK)

	if err := view.WriteExecutionsCSV(c.Writer, execs); err != nil {
		// Headers are already sent; all we can do is log via gin's error list.
		_ = c.Error(err)
	}
}
