package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"planline/internal/repository"
	"planline/models"
)

// AuthHandler serves /auth.
type AuthHandler struct {
	store    repository.UserStore
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthHandler(store repository.UserStore, secret []byte, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{store: store, secret: secret, tokenTTL: tokenTTL}
}

// Login checks credentials and issues a signed token, both as JSON and as a
// cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var input models.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.store.GetUserByLogin(input.Login)
	if err != nil {
		// Same answer for unknown login and bad password.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if user.IsActive != nil && !*user.IsActive {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "account disabled"})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"login":   user.Login,
		"jti":     uuid.NewString(),
		"iat":     now.Unix(),
		"exp":     now.Add(h.tokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.secret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sign token"})
		return
	}

	c.SetCookie("auth_token", token, int(h.tokenTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"login":    user.Login,
			"fullName": user.FullName,
			"role":     user.Role,
		},
	})
}

// Logout clears the auth cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie("auth_token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me returns the authenticated caller.
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.store.GetUser(c.GetUint("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
