package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"planline/models"
)

const dashboardCacheKey = "stats:dashboard"

// DashboardCache keeps the dashboard aggregate in Redis. Every method is
// safe on a nil receiver and on a nil client, so handlers can call through
// unconditionally when caching is disabled.
type DashboardCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewDashboardCache(rdb *redis.Client, ttl time.Duration) *DashboardCache {
	return &DashboardCache{rdb: rdb, ttl: ttl}
}

func (d *DashboardCache) Get() (*models.DashboardStats, bool) {
	if d == nil || d.rdb == nil {
		return nil, false
	}
	raw, err := d.rdb.Get(context.Background(), dashboardCacheKey).Result()
	if err != nil {
		if err != redis.Nil {
			slog.Error("redis GET failed", "key", dashboardCacheKey, "error", err)
		}
		return nil, false
	}
	var stats models.DashboardStats
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		slog.Warn("failed to unmarshal cached dashboard stats", "error", err)
		return nil, false
	}
	return &stats, true
}

func (d *DashboardCache) Set(stats *models.DashboardStats) {
	if d == nil || d.rdb == nil {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := d.rdb.Set(context.Background(), dashboardCacheKey, raw, d.ttl).Err(); err != nil {
		slog.Error("failed to cache dashboard stats", "error", err)
	}
}

// Invalidate drops the cached dashboard after a write that changes its
// numbers.
func (d *DashboardCache) Invalidate() {
	if d == nil || d.rdb == nil {
		return
	}
	if err := d.rdb.Del(context.Background(), dashboardCacheKey).Err(); err != nil {
		slog.Error("failed to invalidate dashboard cache", "error", err)
	}
}
