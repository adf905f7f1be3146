package middleware

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"facets_backend/internal/api"
)

// RateLimitConfig はプロセス全体で共有するトークンバケットの設定です。
type RateLimitConfig struct {
	// RPS は1秒あたりの補充量です。
	RPS float64
	// Burst はバケット容量です。1未満の場合は1になります。
	Burst int
}

// RateLimit は上限を超えたリクエストを429で拒否します。
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.Burst < 1 {
		cfg.Burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst)
	limitStr := strconv.Itoa(cfg.Burst)

	return func(c *gin.Context) {
		res := limiter.Reserve()
		if delay := res.Delay(); delay > 0 {
			res.Cancel()
			retry := int(math.Ceil(delay.Seconds()))
			if retry < 1 {
				retry = 1
			}
			c.Header("Retry-After", strconv.Itoa(retry))
			c.Header("X-RateLimit-Limit", limitStr)
			c.Header("X-RateLimit-Remaining", "0")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, api.ErrorDetail{Detail: api.DetailThrottled})
			return
		}

		remaining := int(math.Floor(limiter.Tokens()))
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", limitStr)
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Next()
	}
}
