// Package di provides dependency injection factories for creating application components.
package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"facets_backend/internal/config"
	"facets_backend/internal/feature/examples/adapters"
	"facets_backend/internal/feature/examples/transport/handler"
	"facets_backend/internal/feature/examples/usecase"
	"facets_backend/internal/platform/cache"
	"facets_backend/internal/platform/logger"
)

// NewExampleRepository creates an ExampleRepository implementation.
// If Redis is available, the gorm repository is wrapped with the caching decorator.
// Otherwise, it talks to the database directly.
func NewExampleRepository(db *gorm.DB, rdb *redis.Client, cfg config.RedisConfig) usecase.ExampleRepository {
	repo := adapters.NewExampleRepository(db)
	if rdb == nil {
		return repo
	}
	return cache.NewCachingExampleRepository(rdb, cfg.CacheTTL, repo, cfg.Namespace)
}

// NewExampleHandler wires repository, usecase and handler for the examples resource.
func NewExampleHandler(db *gorm.DB, rdb *redis.Client, cfg *config.Config, log logger.Logger) *handler.ExampleHandler {
	repo := NewExampleRepository(db, rdb, cfg.Redis)
	uc := usecase.NewExampleUsecase(repo)
	return handler.NewExampleHandler(uc, log.With(logger.String("feature", "examples")), handler.Pagination{
		PageSize:    cfg.Pagination.PageSize,
		MaxPageSize: cfg.Pagination.MaxPageSize,
	})
}
