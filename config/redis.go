package config

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis connects to Redis if an address is configured. Returns nil
// when Redis is absent or unreachable; callers treat a nil client as
// "caching disabled".
func ConnectRedis(addr string) *redis.Client {
	if addr == "" {
		slog.Warn("redis address not set, caching disabled")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		slog.Error("redis unreachable, caching disabled", "error", err)
		return nil
	}

	slog.Info("connected to redis", "addr", addr)
	return rdb
}
