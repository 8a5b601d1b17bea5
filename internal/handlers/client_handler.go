package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"planline/internal/repository"
	"planline/models"
)

// ClientHandler serves /api/clients.
type ClientHandler struct {
	store repository.ClientStore
	cache *DashboardCache
}

func NewClientHandler(store repository.ClientStore, cache *DashboardCache) *ClientHandler {
	return &ClientHandler{store: store, cache: cache}
}

func (h *ClientHandler) List(c *gin.Context) {
	page := pageFromContext(c)
	clients, total, err := h.store.ListClients(page, c.Query("active") == "true")
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, paginated(page, clients, total))
}

func (h *ClientHandler) Create(c *gin.Context) {
	var input models.ClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	client, err := h.store.CreateClient(input)
	if err != nil {
		respondError(c, err)
		return
	}
	h.cache.Invalidate()
	c.JSON(http.StatusCreated, client)
}

func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	client, err := h.store.GetClient(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) GetByCode(c *gin.Context) {
	client, err := h.store.GetClientByCode(c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input models.ClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	client, err := h.store.UpdateClient(id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	h.cache.Invalidate()
	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.store.DeleteClient(id); err != nil {
		respondError(c, err)
		return
	}
	h.cache.Invalidate()
	c.JSON(http.StatusOK, gin.H{"message": "client deleted"})
}

func (h *ClientHandler) Projects(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	projects, err := h.store.ClientProjects(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (h *ClientHandler) ProjectStats(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	stats, err := h.store.ClientProjectStats(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
