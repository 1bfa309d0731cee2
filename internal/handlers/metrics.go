package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/huangang/teamboard/internal/metrics"
)

// Metrics serves the Prometheus registry.
// GET /metrics
func Metrics() gin.HandlerFunc {
	h := metrics.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
