package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shadowlynx/monitor/internal/service"
	"github.com/shadowlynx/monitor/internal/view"
)

// AgentHandler accepts trigger actions and forwards them to the external AI
// agent. The monitor never runs models or trades; it validates and hands off.
type AgentHandler struct {
	agentSvc *service.AgentService
}

// NewAgentHandler creates an AgentHandler.
func NewAgentHandler(agentSvc *service.AgentService) *AgentHandler {
	return &AgentHandler{agentSvc: agentSvc}
}

// insightsRequest is the body of POST /api/ai/insights.
type insightsRequest struct {
	TokenPairs []string `json:"token_pairs"`
	Timeframe  string   `json:"timeframe"`
}

// optimizeRequest is the body of POST /api/ai/optimize.
type optimizeRequest struct {
	Timeperiod string                `json:"timeperiod"`
	Params     service.StrategyParams `json:"params"`
}

// Insights godoc
// POST /api/ai/insights {"token_pairs": [...], "timeframe": "24h"}
func (h *AgentHandler) Insights(c *gin.Context) {
	var req insightsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "ERR_INVALID_BODY", "invalid request body")
		return
	}

	result, err := h.agentSvc.GenerateMarketInsights(c.Request.Context(), req.TokenPairs, req.Timeframe)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondSuccess(c, http.StatusAccepted, result)
}

// Analyze godoc
// POST /api/ai/analyze/:id
func (h *AgentHandler) Analyze(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "ERR_INVALID_ID", "invalid opportunity id")
		return
	}

	result, err := h.agentSvc.AnalyzeOpportunity(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondSuccess(c, http.StatusAccepted, result)
}

// Optimize godoc
// POST /api/ai/optimize {"timeperiod": "30d", "params": {...}}
func (h *AgentHandler) Optimize(c *gin.Context) {
	var req optimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "ERR_INVALID_BODY", "invalid request body")
		return
	}

	result, err := h.agentSvc.OptimizeStrategy(c.Request.Context(), req.Timeperiod, req.Params)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondSuccess(c, http.StatusAccepted, result)
}

// Analyses godoc
// GET /api/ai/analyses?kind=market&limit=20 — stored analyses written back
// by the agent, newest first.
func (h *AgentHandler) Analyses(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	analyses, err := h.agentSvc.RecentAnalyses(c.Request.Context(), c.Query("kind"), limit)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	views := make([]view.AnalysisView, 0, len(analyses))
	for _, a := range analyses {
		views = append(views, view.NewAnalysisView(a))
	}
	respondSuccess(c, http.StatusOK, views)
}

// AnalysisByID godoc
// GET /api/ai/analyses/:id
func (h *AgentHandler) AnalysisByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "ERR_INVALID_ID", "invalid analysis id")
		return
	}

	analysis, err := h.agentSvc.GetAnalysis(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, view.NewAnalysisView(analysis))
}
