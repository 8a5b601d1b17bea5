package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"planline/internal/repository"
)

// AlertHandler serves /api/alerts.
type AlertHandler struct {
	store repository.AlertStore
	cache *DashboardCache
}

func NewAlertHandler(store repository.AlertStore, cache *DashboardCache) *AlertHandler {
	return &AlertHandler{store: store, cache: cache}
}

func (h *AlertHandler) List(c *gin.Context) {
	page := pageFromContext(c)
	filter := repository.AlertFilter{
		Kind:       c.Query("kind"),
		EmployeeID: parseUintQuery(c, "employee"),
	}
	switch c.Query("acked") {
	case "true":
		t := true
		filter.Acked = &t
	case "false":
		f := false
		filter.Acked = &f
	}

	alerts, total, err := h.store.ListAlerts(page, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, paginated(page, alerts, total))
}

func (h *AlertHandler) Acknowledge(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	alert, err := h.store.AcknowledgeAlert(id, c.GetUint("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	h.cache.Invalidate()
	c.JSON(http.StatusOK, alert)
}

// Scan runs the alert scan on demand and reports how many alerts were
// created or refreshed.
func (h *AlertHandler) Scan(c *gin.Context) {
	result, err := h.store.ScanAlerts(time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	h.cache.Invalidate()
	c.JSON(http.StatusOK, result)
}
