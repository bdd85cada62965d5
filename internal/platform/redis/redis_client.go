// Package redis connects to the optional Redis read cache.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"employee_directory/internal/platform/config"
)

const pingTimeout = 3 * time.Second

// NewRedisClient connects and pings. On failure the client is closed and the
// error returned, so callers can fall back to running without cache.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := rdb.Ping(pctx).Err(); err != nil {
		_ = rdb.Close()
		logger.Error("Redis connection failed", zap.String("address", cfg.Addr), zap.Error(err))
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}

	logger.Info("Redis connection successful", zap.String("address", cfg.Addr))
	return rdb, nil
}
