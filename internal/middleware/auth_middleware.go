package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"

	"planline/internal/repository"
)

// cachedUserData is what the middleware keeps in Redis per user.
type cachedUserData struct {
	UserID uint   `json:"user_id"`
	Login  string `json:"login"`
	Role   string `json:"role"`
}

const userCacheTTL = 10 * time.Minute

// Auth validates the bearer token and loads the caller's role, from Redis
// when possible, from the database otherwise. rdb may be nil (caching
// disabled).
func Auth(store repository.UserStore, rdb *redis.Client, secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := extractToken(c)
		if tokenStr == "" {
			abortUnauthorized(c, "authorization token not provided")
			return
		}

		token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(c, "invalid token claims")
			return
		}
		userIDFloat, ok := claims["user_id"].(float64)
		if !ok {
			abortUnauthorized(c, "invalid user id in token")
			return
		}
		userID := uint(userIDFloat)

		cacheKey := fmt.Sprintf("user:%d:data", userID)
		if rdb != nil {
			cached, err := rdb.Get(context.Background(), cacheKey).Result()
			if err == nil {
				var data cachedUserData
				if json.Unmarshal([]byte(cached), &data) == nil {
					setContextAndProceed(c, &data)
					return
				}
				slog.Warn("failed to unmarshal cached user data", "user_id", userID)
			} else if err != redis.Nil {
				slog.Error("redis GET failed", "error", err, "user_id", userID)
			}
		}

		user, err := store.GetUser(userID)
		if err != nil {
			abortUnauthorized(c, "user from token not found")
			return
		}
		if user.IsActive != nil && !*user.IsActive {
			abortUnauthorized(c, "account disabled")
			return
		}

		data := cachedUserData{UserID: user.ID, Login: user.Login, Role: user.Role}
		if rdb != nil {
			if jsonData, err := json.Marshal(data); err == nil {
				if err := rdb.Set(context.Background(), cacheKey, jsonData, userCacheTTL).Err(); err != nil {
					slog.Error("failed to cache user data", "error", err, "user_id", userID)
				}
			}
		}

		setContextAndProceed(c, &data)
	}
}

// RequireRole guards a route group. An admin passes every check.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "admin" {
			c.Next()
			return
		}
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
		c.Abort()
	}
}

// InvalidateUserCache drops the cached auth data after a user is modified.
func InvalidateUserCache(rdb *redis.Client, userID uint) {
	if rdb == nil {
		return
	}
	cacheKey := fmt.Sprintf("user:%d:data", userID)
	if err := rdb.Del(context.Background(), cacheKey).Err(); err != nil {
		slog.Error("failed to invalidate user cache", "error", err, "user_id", userID)
	}
}

func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie("auth_token"); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}

func setContextAndProceed(c *gin.Context, data *cachedUserData) {
	c.Set("user_id", data.UserID)
	c.Set("login", data.Login)
	c.Set("role", data.Role)
	c.Next()
}

func abortUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": message})
	c.Abort()
}
