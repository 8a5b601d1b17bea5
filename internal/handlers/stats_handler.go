package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"planline/internal/repository"
)

// StatsHandler serves /api/stats.
type StatsHandler struct {
	store repository.StatsStore
	cache *DashboardCache
}

func NewStatsHandler(store repository.StatsStore, cache *DashboardCache) *StatsHandler {
	return &StatsHandler{store: store, cache: cache}
}

// Dashboard returns the headline counts, served from Redis when the cached
// copy is still fresh.
func (h *StatsHandler) Dashboard(c *gin.Context) {
	if stats, ok := h.cache.Get(); ok {
		c.JSON(http.StatusOK, stats)
		return
	}

	stats, err := h.store.DashboardStats(time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	h.cache.Set(stats)
	c.JSON(http.StatusOK, stats)
}
