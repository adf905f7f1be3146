package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"facets_backend/internal/platform/logger"
)

// TestNewRedisClient_Unreachable は接続できない場合にエラーを返しログに残すことを検証します。
func TestNewRedisClient_Unreachable(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	rdb, err := NewRedisClient(ctx, Config{Addr: "127.0.0.1:1", DialTimeout: 200 * time.Millisecond}, logger.FromZap(zap.New(core)))

	assert.Error(t, err)
	assert.Nil(t, rdb)
	if assert.Equal(t, 1, logs.Len()) {
		assert.Equal(t, "Redis connection failed", logs.All()[0].Message)
		assert.Equal(t, "127.0.0.1:1", logs.All()[0].ContextMap()["address"])
	}
}
