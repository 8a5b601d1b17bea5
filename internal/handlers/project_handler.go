package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"planline/internal/repository"
	"planline/models"
)

// ProjectHandler serves /api/projects.
type ProjectHandler struct {
	store repository.ProjectStore
	cache *DashboardCache
}

func NewProjectHandler(store repository.ProjectStore, cache *DashboardCache) *ProjectHandler {
	return &ProjectHandler{store: store, cache: cache}
}

func (h *ProjectHandler) List(c *gin.Context) {
	page := pageFromContext(c)
	from, stop := parseDateQuery(c, "from")
	if stop {
		return
	}
	to, stop := parseDateQuery(c, "to")
	if stop {
		return
	}
	filter := repository.ProjectFilter{
		ClientID: parseUintQuery(c, "client"),
		Status:   c.Query("status"),
		From:     from,
		To:       to,
	}
	projects, total, err := h.store.ListProjects(page, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, paginated(page, projects, total))
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var input models.ProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	project, err := h.store.CreateProject(input)
	if err != nil {
		respondError(c, err)
		return
	}
	h.cache.Invalidate()
	c.JSON(http.StatusCreated, project)
}

func (h *ProjectHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	project, err := h.store.GetProject(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input models.ProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	project, err := h.store.UpdateProject(id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	h.cache.Invalidate()
	c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.store.DeleteProject(id); err != nil {
		respondError(c, err)
		return
	}
	h.cache.Invalidate()
	c.JSON(http.StatusOK, gin.H{"message": "project deleted"})
}

func (h *ProjectHandler) Assign(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input models.AssignmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	assignment, err := h.store.AssignEmployee(id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, assignment)
}

func (h *ProjectHandler) Unassign(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	employeeID, ok := parseID(c, "employeeId")
	if !ok {
		return
	}
	if err := h.store.UnassignEmployee(id, employeeID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "assignment removed"})
}

func (h *ProjectHandler) Assignments(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	assignments, err := h.store.ProjectAssignments(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, assignments)
}

func (h *ProjectHandler) Stats(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	stats, err := h.store.ProjectStats(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
