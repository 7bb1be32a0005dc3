package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/shadowlynx/monitor/internal/domain"
	"github.com/shadowlynx/monitor/internal/service"
	"github.com/shadowlynx/monitor/internal/view"
)

// OpportunityHandler serves the opportunity listing, detail and export
// endpoints.
type OpportunityHandler struct {
	listingSvc *service.ListingService
}

// NewOpportunityHandler creates an OpportunityHandler.
func NewOpportunityHandler(listingSvc *service.ListingService) *OpportunityHandler {
	return &OpportunityHandler{listingSvc: listingSvc}
}

// List godoc
// GET /api/opportunities?page=1&per_page=50&network=BSC&min_profit=10&source_dex=&target_dex=&token_pair=
func (h *OpportunityHandler) List(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	page, err := parsePage(c)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(domain.DefaultPerPage)))

	items, meta, err := h.listingSvc.ListOpportunities(c.Request.Context(), filter, page, perPage)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondPage(c, view.OpportunityRows(items), meta)
}

// GetByID godoc
// GET /api/opportunities/:id
func (h *OpportunityHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "ERR_INVALID_ID", "invalid opportunity id")
		return
	}

	detail, err := h.listingSvc.GetOpportunity(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	payload := gin.H{
		"opportunity": view.NewOpportunityRow(detail.Opportunity),
		"state":       detail.State,
	}
	if detail.Execution != nil {
		payload["execution"] = detail.Execution
	}
	if detail.Analysis != nil {
		payload["analysis"] = view.NewAnalysisView(detail.Analysis)
	}
	respondSuccess(c, http.StatusOK, payload)
}

// FilterOptions godoc
// GET /api/opportunities/filters
func (h *OpportunityHandler) FilterOptions(c *gin.Context) {
	opts, err := h.listingSvc.FilterOptions(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, opts)
}

// ExportCSV godoc
// GET /api/export/opportunities.csv — same filter predicates as List, full
// result set, streamed as an attachment.
func (h *OpportunityHandler) ExportCSV(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	items, err := h.listingSvc.ExportOpportunities(c.Request.Context(), filter)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	filename := "opportunities_" + time.Now().UTC().Format("20060102_150405") + ".csv"
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(http.StatusOK)

	if err := view.WriteOpportunitiesCSV(c.Writer, items); err != nil {
		// Headers are already sent; all we can do is log via gin's error list.
		_ = c.Error(err)
	}
}

// ── helpers ──────────────────────────────────────────────────────────────────

// parseFilter reads the listing predicates from the query string. Unknown
// network values and unparsable min_profit are validation errors; empty
// parameters impose no constraint.
func parseFilter(c *gin.Context) (domain.OpportunityFilter, error) {
	f := domain.OpportunityFilter{
		TokenPair: c.Query("token_pair"),
		SourceDEX: c.Query("source_dex"),
		TargetDEX: c.Query("target_dex"),
	}

	if network := c.Query("network"); network != "" {
		n := domain.Network(network)
		if !n.IsValid() {
			return domain.OpportunityFilter{}, domain.ErrInvalidNetwork
		}
		f.Network = n
	}

	if raw := c.Query("min_profit"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return domain.OpportunityFilter{}, domain.ErrInvalidMinProfit
		}
		min := d.InexactFloat64()
		f.MinProfit = &min
	}
	return f, nil
}

// parsePage reads the 1-indexed page parameter. Non-numeric or non-positive
// values are validation errors, never silently clamped.
func parsePage(c *gin.Context) (int, error) {
	raw := c.DefaultQuery("page", "1")
	page, err := strconv.Atoi(raw)
	if err != nil || page <= 0 {
		return 0, domain.ErrInvalidPage
	}
	return page, nil
}
