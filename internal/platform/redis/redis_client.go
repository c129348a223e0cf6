// Package redis はRedisクライアントの生成を提供します。
package redis

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrNoAddr = errors.New("redis address is not configured")

const pingTimeout = 3 * time.Second

// NewRedisClient は addr に接続し、Pingで疎通を確認したクライアントを返します。
// addr が空の場合は ErrNoAddr を返します。
func NewRedisClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	if addr == "" {
		return nil, ErrNoAddr
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	// 接続確認
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		slog.Error("Redis connection failed", "address", addr, "error", err)
		_ = rdb.Close()
		return nil, err
	}

	slog.Info("Redis connection successful", "address", addr)
	return rdb, nil
}
