package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"planline/internal/repository"
)

// respondError maps repository sentinel errors onto HTTP statuses. Rule
// violations keep their message; unexpected errors are logged and hidden.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrDuplicate), errors.Is(err, repository.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrInvalid):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		slog.Error("unhandled repository error", "error", err, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// parseID reads a numeric :id path parameter, writing a 400 on failure.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// parseDateQuery reads an optional YYYY-MM-DD query parameter. The bool
// reports whether handling should stop (a malformed value was rejected).
func parseDateQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, false
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + ", want YYYY-MM-DD"})
		return nil, true
	}
	return &t, false
}

// parseUintQuery reads an optional numeric query parameter; 0 means unset.
func parseUintQuery(c *gin.Context, name string) uint {
	n, _ := strconv.Atoi(c.Query(name))
	if n < 0 {
		return 0
	}
	return uint(n)
}
