package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"planline/internal/repository"
	"planline/models"
)

// TeamHandler serves /api/teams.
type TeamHandler struct {
	store repository.TeamStore
}

func NewTeamHandler(store repository.TeamStore) *TeamHandler {
	return &TeamHandler{store: store}
}

func (h *TeamHandler) List(c *gin.Context) {
	page := pageFromContext(c)
	teams, total, err := h.store.ListTeams(page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, paginated(page, teams, total))
}

func (h *TeamHandler) Create(c *gin.Context) {
	var input models.TeamInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	team, err := h.store.CreateTeam(input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, team)
}

func (h *TeamHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	team, err := h.store.GetTeam(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, team)
}

func (h *TeamHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input models.TeamInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	team, err := h.store.UpdateTeam(id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, team)
}

func (h *TeamHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.store.DeleteTeam(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "team deleted"})
}

func (h *TeamHandler) AddMember(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input models.TeamMemberInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	member, err := h.store.AddTeamMember(id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, member)
}

func (h *TeamHandler) RemoveMember(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	employeeID, ok := parseID(c, "employeeId")
	if !ok {
		return
	}
	if err := h.store.RemoveTeamMember(id, employeeID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "member removed"})
}

func (h *TeamHandler) Members(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	members, err := h.store.TeamMembers(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

func (h *TeamHandler) Capacity(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	capacity, err := h.store.TeamCapacity(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, capacity)
}
