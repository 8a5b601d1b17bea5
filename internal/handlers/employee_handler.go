package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"planline/internal/repository"
	"planline/models"
)

// EmployeeHandler serves /api/employees.
type EmployeeHandler struct {
	store repository.EmployeeStore
	cache *DashboardCache
}

func NewEmployeeHandler(store repository.EmployeeStore, cache *DashboardCache) *EmployeeHandler {
	return &EmployeeHandler{store: store, cache: cache}
}

func (h *EmployeeHandler) List(c *gin.Context) {
	page := pageFromContext(c)
	filter := repository.EmployeeFilter{
		ActiveOnly: c.Query("active") == "true",
		TeamID:     parseUintQuery(c, "team"),
		Skill:      c.Query("skill"),
	}
	employees, total, err := h.store.ListEmployees(page, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, paginated(page, employees, total))
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	var input models.EmployeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	employee, err := h.store.CreateEmployee(input)
	if err != nil {
		respondError(c, err)
		return
	}
	h.cache.Invalidate()
	c.JSON(http.StatusCreated, employee)
}

func (h *EmployeeHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	employee, err := h.store.GetEmployee(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, employee)
}

func (h *EmployeeHandler) GetByCode(c *gin.Context) {
	employee, err := h.store.GetEmployeeByCode(c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, employee)
}

func (h *EmployeeHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input models.EmployeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	employee, err := h.store.UpdateEmployee(id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	h.cache.Invalidate()
	c.JSON(http.StatusOK, employee)
}

func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.store.DeleteEmployee(id); err != nil {
		respondError(c, err)
		return
	}
	h.cache.Invalidate()
	c.JSON(http.StatusOK, gin.H{"message": "employee deleted"})
}

func (h *EmployeeHandler) Teams(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	teams, err := h.store.EmployeeTeams(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, teams)
}

func (h *EmployeeHandler) Assignments(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	assignments, err := h.store.EmployeeAssignments(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, assignments)
}

// Utilization reports planned hours vs capacity for ?from=...&to=...
// (YYYY-MM-DD); the default window is the previous four weeks.
func (h *EmployeeHandler) Utilization(c *gin.Context) {
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

	util, err := h.store.EmployeeUtilization(id, *from, *to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util)
}
