package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"planline/internal/repository"
	"planline/models"
)

// WorkloadHandler serves /api/workloads.
type WorkloadHandler struct {
	store repository.WorkloadStore
	cache *DashboardCache
}

func NewWorkloadHandler(store repository.WorkloadStore, cache *DashboardCache) *WorkloadHandler {
	return &WorkloadHandler{store: store, cache: cache}
}

func (h *WorkloadHandler) List(c *gin.Context) {
	page := pageFromContext(c)
	from, stop := parseDateQuery(c, "from")
	if stop {
		return
	}
	to, stop := parseDateQuery(c, "to")
	if stop {
		return
	}
	filter := repository.WorkloadFilter{
		EmployeeID: parseUintQuery(c, "employee"),
		ProjectID:  parseUintQuery(c, "project"),
		From:       from,
		To:         to,
	}
	workloads, total, err := h.store.ListWorkloads(page, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, paginated(page, workloads, total))
}

// Upsert creates or replaces the workload for the (employee, project, week)
// key.
func (h *WorkloadHandler) Upsert(c *gin.Context) {
	var input models.WorkloadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	workload, err := h.store.UpsertWorkload(input)
	if err != nil {
		respondError(c, err)
		return
	}
	h.cache.Invalidate()
	c.JSON(http.StatusOK, workload)
}

func (h *WorkloadHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	workload, err := h.store.GetWorkload(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, workload)
}

func (h *WorkloadHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.store.DeleteWorkload(id); err != nil {
		respondError(c, err)
		return
	}
	h.cache.Invalidate()
	c.JSON(http.StatusOK, gin.H{"message": "workload deleted"})
}

// WeeklyTotals sums one employee's hours per week; defaults to the previous
// four weeks.
func (h *WorkloadHandler) WeeklyTotals(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	from, stop := parseDateQuery(c, "from")
	if stop {
		return
	}
	to, stop := parseDateQuery(c, "to")
	if stop {
		return
	}
	if from == nil || to == nil {
		now := time.Now()
		start := now.AddDate(0, 0, -28)
		from, to = &start, &now
	}
	totals, err := h.store.WeeklyTotals(id, *from, *to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, totals)
}

// Overallocations lists weeks where planned hours exceed capacity; defaults
// to four weeks back through eight weeks ahead.
func (h *WorkloadHandler) Overallocations(c *gin.Context) {
	from, stop := parseDateQuery(c, "from")
	if stop {
		return
	}
	to, stop := parseDateQuery(c, "to")
	if stop {
		return
	}
	if from == nil || to == nil {
		now := time.Now()
		start := now.AddDate(0, 0, -28)
		end := now.AddDate(0, 0, 56)
		from, to = &start, &end
	}
	rows, err := h.store.Overallocations(*from, *to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
