package middlewares

import (
	"strconv"
	"time"

	"github.com/ChurchPortal/initializers"
	"github.com/gin-gonic/gin"
)

// Metrics records request counts and latency per matched route.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		initializers.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		initializers.HTTPLatency.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
