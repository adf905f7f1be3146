// Package redis はRedisクライアントの生成を提供します。
package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"facets_backend/internal/platform/logger"
)

// Config はRedis接続設定です。
type Config struct {
	Addr     string
	Password string
	DB       int
	// DialTimeout が0の場合はgo-redisのデフォルトを使用します。
	DialTimeout time.Duration
}

// NewRedisClient はクライアントを生成し、PINGで接続を確認します。
func NewRedisClient(ctx context.Context, cfg Config, log logger.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})

	// 接続確認
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Error("Redis connection failed", logger.String("address", cfg.Addr), logger.Error(err))
		_ = rdb.Close()
		return nil, err
	}

	log.Info("Redis connection successful", logger.String("address", cfg.Addr))
	return rdb, nil
}
