package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestAllowDrainsBucketPerKey(t *testing.T) {
	rl := newRateLimiter(2) // burst floor lifts capacity to 10

	for i := 0; i < 10; i++ {
		if !rl.allow("10.0.0.1") {
			t.Fatalf("request %d denied inside burst capacity", i+1)
		}
	}
	if rl.allow("10.0.0.1") {
		t.Error("request 11 allowed, want bucket drained")
	}

	// A different IP draws from its own bucket.
	if !rl.allow("10.0.0.2") {
		t.Error("fresh IP denied by another IP's drained bucket")
	}
}

func TestRateLimitMiddlewareReturns429(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/limited", RateLimitMiddleware(1), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	var last int
	for i := 0; i < 12; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/limited", nil)
		req.RemoteAddr = "192.0.2.9:1234"
		r.ServeHTTP(w, req)
		last = w.Code
	}
	if last != http.StatusTooManyRequests {
		t.Errorf("status after exhausting burst = %d, want 429", last)
	}
}
