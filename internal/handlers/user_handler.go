package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"planline/internal/middleware"
	"planline/internal/repository"
	"planline/models"
)

// UserHandler serves /api/users (admin only).
type UserHandler struct {
	store repository.UserStore
	rdb   *redis.Client
}

func NewUserHandler(store repository.UserStore, rdb *redis.Client) *UserHandler {
	return &UserHandler{store: store, rdb: rdb}
}

func (h *UserHandler) List(c *gin.Context) {
	page := pageFromContext(c)
	users, total, err := h.store.ListUsers(page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, paginated(page, users, total))
}

func (h *UserHandler) Create(c *gin.Context) {
	var input models.UserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	user, err := h.store.CreateUser(input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	user, err := h.store.GetUser(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Update modifies an account and drops its cached auth data so role changes
// apply on the next request.
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input models.UserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	user, err := h.store.UpdateUser(id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	middleware.InvalidateUserCache(h.rdb, id)
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.store.DeleteUser(id); err != nil {
		respondError(c, err)
		return
	}
	middleware.InvalidateUserCache(h.rdb, id)
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}
