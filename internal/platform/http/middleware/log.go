package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"facets_backend/internal/platform/logger"
)

// Log returns a middleware that logs one line per HTTP request using the provided logger.
// 5xx responses are logged at error level, 4xx at warn level.
func Log(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		fields := []logger.Field{
			logger.String("method", c.Request.Method),
			logger.String("path", c.Request.URL.Path),
			logger.Int("status", status),
			logger.Int("bytes", c.Writer.Size()),
			logger.Duration("duration", time.Since(start)),
			logger.String("remote_ip", c.ClientIP()),
			logger.String("user_agent", c.Request.UserAgent()),
			logger.String("request_id", GetRequestID(c)),
		}

		switch {
		case status >= 500:
			log.Error("http_request", fields...)
		case status >= 400:
			log.Warn("http_request", fields...)
		default:
			log.Info("http_request", fields...)
		}
	}
}
