package middlewares

import (
	"time"

	"github.com/ChurchPortal/initializers"
	"github.com/ChurchPortal/models"
	"github.com/gin-gonic/gin"
)

// RequestLogger writes one structured line per request. The level follows the
// response status.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration", time.Since(start),
			"ip", c.ClientIP(),
		}
		if u, ok := c.Get("currentUser"); ok {
			if user, ok := u.(models.User); ok {
				fields = append(fields, "user", user.User_ID)
			}
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}

		switch {
		case status >= 500:
			initializers.Log.Errorw("request", fields...)
		case status >= 400:
			initializers.Log.Warnw("request", fields...)
		default:
			initializers.Log.Infow("request", fields...)
		}
	}
}
