// Package middleware holds the gin middleware shared by every NewsHub route.
package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"newshub/internal/metrics"
)

const unmatchedRoute = "unmatched"

// unobserved routes are scraped or polled on a timer and would drown the API series.
var unobserved = map[string]struct{}{
	"/metrics": {},
	"/health":  {},
	"/ready":   {},
	"/live":    {},
}

// Metrics records request count, latency and in-flight gauge per route template,
// so /api/articles/:id is one series regardless of the id.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if _, skip := unobserved[route]; skip {
			c.Next()
			return
		}
		if route == "" {
			route = unmatchedRoute
		}

		metrics.HTTPRequestsInFlight.Inc()
		start := time.Now()

		c.Next()

		metrics.HTTPRequestsInFlight.Dec()
		method := c.Request.Method
		metrics.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
