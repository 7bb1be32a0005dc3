// Package api wires the HTTP surface: routes, CORS, rate limiting and the
// WebSocket upgrade endpoint.
package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shadowlynx/monitor/internal/api/handler"
	"github.com/shadowlynx/monitor/internal/api/middleware"
	"github.com/shadowlynx/monitor/internal/config"
	"github.com/shadowlynx/monitor/internal/service"
	"github.com/shadowlynx/monitor/internal/ws"
)

// RouterDeps bundles every dependency needed to build the router.
// Populated once in main() and passed to SetupRouter.
type RouterDeps struct {
	ListingSvc *service.ListingService
	StatsSvc   *service.StatsService
	HealthSvc  *service.HealthService
	AgentSvc   *service.AgentService
	Hub        *ws.Hub
	Cfg        *config.Config
}

// SetupRouter creates and configures the main Gin engine with all routes,
// middleware, CORS, and rate limiting rules.
func SetupRouter(deps RouterDeps) *gin.Engine {
	if deps.Cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())

	// ── CORS ─────────────────────────────────────────────────────────────────
	r.Use(corsMiddleware(deps.Cfg))

	// ── Handlers ─────────────────────────────────────────────────────────────
	oppH := handler.NewOpportunityHandler(deps.ListingSvc)
	statsH := handler.NewStatsHandler(deps.StatsSvc)
	statusH := handler.NewStatusHandler(deps.HealthSvc, deps.Hub)
	agentH := handler.NewAgentHandler(deps.AgentSvc)

	// ── Liveness ─────────────────────────────────────────────────────────────
	r.GET("/healthz", statusH.Healthz)

	// ── Rate limiters ─────────────────────────────────────────────────────────
	readRL := middleware.RateLimitMiddleware(30)  // 30 req/s per IP for read endpoints
	exportRL := middleware.RateLimitMiddleware(2) // exports are heavy; keep them rare
	aiRL := middleware.RateLimitMiddleware(5)     // 5 req/s per IP for agent triggers

	api := r.Group("/api")
	{
		// ── System health ────────────────────────────────────────────────────
		api.GET("/status", statusH.SystemStatus)

		// ── Opportunities ────────────────────────────────────────────────────
		opps := api.Group("/opportunities")
		opps.Use(readRL)
		{
			opps.GET("", oppH.List)
			opps.GET("/filters", oppH.FilterOptions)
			opps.GET("/:id", oppH.GetByID)
		}

		// ── Dashboard & profits ──────────────────────────────────────────────
		api.GET("/dashboard", readRL, statsH.Dashboard)
		api.GET("/profits", readRL, statsH.Profits)

		// ── CSV exports ──────────────────────────────────────────────────────
		api.GET("/export/opportunities.csv", exportRL, oppH.ExportCSV)
		api.GET("/export/executions.csv", exportRL, statsH.ExportCSV)

		// ── AI agent triggers ────────────────────────────────────────────────
		ai := api.Group("/ai")
		ai.Use(aiRL)
		{
			ai.POST("/insights", agentH.Insights)
			ai.POST("/analyze/:id", agentH.Analyze)
			ai.POST("/optimize", agentH.Optimize)
			ai.GET("/analyses", agentH.Analyses)
			ai.GET("/analyses/:id", agentH.AnalysisByID)
		}
	}

	// ── WebSocket ─────────────────────────────────────────────────────────────
	if deps.Hub != nil {
		r.GET("/ws", func(c *gin.Context) {
			deps.Hub.ServeWs(c.Writer, c.Request)
		})
	}

	return r
}

// ── CORS helper ───────────────────────────────────────────────────────────────

// corsMiddleware returns a gin middleware that sets appropriate CORS headers.
// In development all origins are allowed; in production only configured ones.
func corsMiddleware(cfg *config.Config) gin.HandlerFunc {
	allowed := map[string]bool{}
	for _, o := range strings.Split(cfg.Server.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			allowed[o] = true
		}
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if !cfg.IsProd() {
			// Development: allow any origin
			c.Header("Access-Control-Allow-Origin", "*")
		} else if origin != "" && allowed[origin] {
			c.Header("Access-Control-Allow-Origin", origin)
		}

		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
