package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"planline/internal/repository"
	"planline/models"
)

// ScheduleHandler serves /api/schedules.
type ScheduleHandler struct {
	store repository.ScheduleStore
}

func NewScheduleHandler(store repository.ScheduleStore) *ScheduleHandler {
	return &ScheduleHandler{store: store}
}

func (h *ScheduleHandler) List(c *gin.Context) {
	page := pageFromContext(c)
	from, stop := parseDateQuery(c, "from")
	if stop {
		return
	}
	to, stop := parseDateQuery(c, "to")
	if stop {
		return
	}
	filter := repository.ScheduleFilter{
		EmployeeID: parseUintQuery(c, "employee"),
		ProjectID:  parseUintQuery(c, "project"),
		From:       from,
		To:         to,
	}
	schedules, total, err := h.store.ListSchedules(page, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, paginated(page, schedules, total))
}

func (h *ScheduleHandler) Create(c *gin.Context) {
	var input models.ScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	schedule, err := h.store.CreateSchedule(input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, schedule)
}

// CreateWeek accepts a batch of entries created in one transaction.
func (h *ScheduleHandler) CreateWeek(c *gin.Context) {
	var input models.WeekScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	schedules, err := h.store.CreateWeekSchedules(input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, schedules)
}

func (h *ScheduleHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	schedule, err := h.store.GetSchedule(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedule)
}

func (h *ScheduleHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input models.ScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	schedule, err := h.store.UpdateSchedule(id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedule)
}

func (h *ScheduleHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.store.DeleteSchedule(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "schedule deleted"})
}

// Hours reports scheduled hours per day for one employee; from and to are
// required.
func (h *ScheduleHandler) Hours(c *gin.Context) {
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
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to are required"})
		return
	}
	hours, err := h.store.ScheduledHours(id, *from, *to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, hours)
}
