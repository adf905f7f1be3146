// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"facets_backend/internal/api"
	"facets_backend/internal/platform/logger"
)

// readinessTimeout は依存先の疎通確認に使う上限時間です。
const readinessTimeout = 2 * time.Second

// Health はサービスヘルスチェック用の /healthz エンドポイントを処理します。
// HTTPメソッドに応じて適切にレスポンスし、キャッシュを防止します。
func Health(c *gin.Context) {
	// 明示的にキャッシュを防止
	c.Header("Cache-Control", "no-store")

	// すべてのGET/HEAD/OPTIONSリクエストに対して200または204を返す
	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
	default:
		c.JSON(http.StatusOK, api.HealthResponse{Status: "ok"})
	}
}

// Readiness は /readyz エンドポイントのハンドラーを返します。
// checkがエラーを返した場合は503を返し、原因をログに記録します。
func Readiness(check func(ctx context.Context) error, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")

		ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
		defer cancel()

		if err := check(ctx); err != nil {
			log.Warn("readiness check failed", logger.Error(err))
			c.JSON(http.StatusServiceUnavailable, api.HealthResponse{Status: "unavailable"})
			return
		}
		c.JSON(http.StatusOK, api.HealthResponse{Status: "ready"})
	}
}
