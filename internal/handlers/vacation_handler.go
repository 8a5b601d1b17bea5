package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"planline/internal/repository"
	"planline/models"
)

// VacationHandler serves /api/vacations.
type VacationHandler struct {
	store repository.VacationStore
	cache *DashboardCache
}

func NewVacationHandler(store repository.VacationStore, cache *DashboardCache) *VacationHandler {
	return &VacationHandler{store: store, cache: cache}
}

func (h *VacationHandler) List(c *gin.Context) {
	page := pageFromContext(c)
	from, stop := parseDateQuery(c, "from")
	if stop {
		return
	}
	to, stop := parseDateQuery(c, "to")
	if stop {
		return
	}
	filter := repository.VacationFilter{
		EmployeeID: parseUintQuery(c, "employee"),
		Status:     c.Query("status"),
		From:       from,
		To:         to,
	}
	vacations, total, err := h.store.ListVacations(page, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, paginated(page, vacations, total))
}

func (h *VacationHandler) Create(c *gin.Context) {
	var input models.VacationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	vacation, err := h.store.CreateVacation(input)
	if err != nil {
		respondError(c, err)
		return
	}
	h.cache.Invalidate()
	c.JSON(http.StatusCreated, vacation)
}

func (h *VacationHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	vacation, err := h.store.GetVacation(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vacation)
}

func (h *VacationHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input models.VacationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	vacation, err := h.store.UpdateVacation(id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vacation)
}

// Decide approves, rejects or cancels a request. The decider is the
// authenticated user.
func (h *VacationHandler) Decide(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input models.VacationDecisionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	deciderID := c.GetUint("user_id")
	vacation, err := h.store.DecideVacation(id, input.Status, deciderID)
	if err != nil {
		respondError(c, err)
		return
	}
	h.cache.Invalidate()
	c.JSON(http.StatusOK, vacation)
}

func (h *VacationHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.store.DeleteVacation(id); err != nil {
		respondError(c, err)
		return
	}
	h.cache.Invalidate()
	c.JSON(http.StatusOK, gin.H{"message": "vacation deleted"})
}

// DaysTaken reports approved vacation days for ?year=, defaulting to the
// current year.
func (h *VacationHandler) DaysTaken(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	year, _ := strconv.Atoi(c.Query("year"))
	if year == 0 {
		year = time.Now().Year()
	}
	taken, err := h.store.VacationDaysTaken(id, year)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, taken)
}

func (h *VacationHandler) Upcoming(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	vacations, err := h.store.UpcomingVacations(limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vacations)
}
