package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shadowlynx/monitor/internal/domain"
)

// ──────────────────────────────────────────────────────────────────────────────
// Standard response helpers
// ──────────────────────────────────────────────────────────────────────────────

// respondSuccess writes {"success": true, "data": data} with the given status.
func respondSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

// respondError writes {"success": false, "error": msg, "code": code}.
func respondError(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"error":   msg,
		"code":    code,
	})
}

// respondPage writes {"success": true, "data": items, "meta": {...}} using the
// full pagination envelope (total, page, pages, has_prev/has_next, links).
func respondPage(c *gin.Context, items interface{}, meta domain.PageMeta) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    items,
		"meta":    meta,
	})
}

// respondDomainError translates a service-layer error into the matching HTTP
// status: 400 for validation, 404 for missing entities, 503 when the store or
// the agent is unreachable, 500 otherwise.
func respondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "ERR_VALIDATION", err.Error())
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "ERR_NOT_FOUND", err.Error())
	case domain.IsUnavailable(err):
		respondError(c, http.StatusServiceUnavailable, "ERR_UNAVAILABLE", "data temporarily unavailable")
	default:
		respondError(c, http.StatusInternalServerError, "ERR_INTERNAL", "internal error")
	}
}
