package middleware

import (
	"strconv"
	"time"

	"auction-house/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics records request counts and latency labelled by the route template,
// so /api/listings/:id stays one series.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPLatency.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
