package router

import (
	"context"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "facets_backend/docs"
	examplehandler "facets_backend/internal/feature/examples/transport/handler"
	"facets_backend/internal/platform/http/handler"
	"facets_backend/internal/platform/http/middleware"
	jwtmw "facets_backend/internal/platform/jwt"
	"facets_backend/internal/platform/logger"
)

// Options はルーター構築時の設定です。
type Options struct {
	// MountPrefix はexamplesリソースの配置先です（例: "/api"）。空ならルート直下です。
	MountPrefix string
	// JWTSecret が空でなければ更新系ルートにBearer認証を要求します。
	JWTSecret string
	RateLimit middleware.RateLimitConfig
	Swagger   bool
	// Ready は/readyzで呼ばれる疎通確認です。nilなら常にready扱いです。
	Ready func(ctx context.Context) error
}

func NewRouter(examples *examplehandler.ExampleHandler, log logger.Logger, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Log(log), gin.Recovery())
	if opts.RateLimit.RPS > 0 {
		r.Use(middleware.RateLimit(opts.RateLimit))
	}

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	r.OPTIONS("/healthz", handler.Health)
	ready := opts.Ready
	if ready == nil {
		ready = func(context.Context) error { return nil }
	}
	r.GET("/readyz", handler.Readiness(ready, log))

	if opts.Swagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(
			swaggerFiles.Handler,
			ginSwagger.URL("doc.json"),
			ginSwagger.DefaultModelsExpandDepth(-1),
		))
	}

	group := r.Group(opts.MountPrefix + "/examples")

	// 参照系
	group.GET("/", examples.List)
	group.GET("/active/", examples.Active)
	group.GET("/stats/", examples.Stats)
	group.GET("/:id/", examples.Retrieve)

	// 更新系
	// JWTシークレット設定時のみ jwtmw.AuthRequired() を適用
	write := group.Group("")
	if opts.JWTSecret != "" {
		write.Use(jwtmw.AuthRequired(opts.JWTSecret))
	}
	{
		write.POST("/", examples.Create)
		write.PUT("/:id/", examples.Update)
		write.PATCH("/:id/", examples.PartialUpdate)
		write.DELETE("/:id/", examples.Delete)
		write.POST("/:id/toggle_active/", examples.ToggleActive)
	}

	return r
}
