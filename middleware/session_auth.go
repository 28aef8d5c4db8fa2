package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"slotbooker/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// bodyToken is the legacy token-in-body shape the browser client sends.
type bodyToken struct {
	AuthToken string `json:"authToken"`
}

// SessionAuthMiddleware authenticates requests against live sessions. It
// accepts an Authorization: Bearer header or, for compatibility with the
// original client, an authToken field in the JSON body (the body is
// re-buffered so handlers can still bind it). The token must parse as a
// valid JWT and its SHA-256 hash must match the session stored in Redis.
func SessionAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
			}
		}()

		tokenString := extractToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}

		email, err := utils.ExtractEmailFromToken(tokenString)
		if err != nil || email == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}

		ctx := context.Background()
		authCache := utils.GetAuthCacheClient()
		storedHash, err := authCache.Get(ctx, utils.AuthCachePrefix+email).Result()
		if err == redis.Nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Session expired, please log in again",
			})
			return
		}
		if err != nil {
			utils.GetLogger().Error("session lookup failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "Internal Server Error",
			})
			return
		}

		if storedHash != utils.HashToken(tokenString) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Token mismatch",
			})
			return
		}

		c.Set("userEmail", email)
		c.Next()
	}
}

// extractToken pulls the bearer token from the Authorization header, or
// falls back to the authToken body field.
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		if token := strings.TrimPrefix(authHeader, "Bearer "); token != "" {
			return token
		}
	}

	if c.Request.Body == nil {
		return ""
	}
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return ""
	}
	// Restore the body so handlers can bind it again.
	c.Request.Body = io.NopCloser(bytes.NewBuffer(data))

	var body bodyToken
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	return body.AuthToken
}
