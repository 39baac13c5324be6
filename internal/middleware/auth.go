package middleware

import (
	"net/http"
	"strings"

	"mechoci-be/internal/user"
	"mechoci-be/internal/utils"

	"github.com/gin-gonic/gin"
)

// Auth requires a valid bearer token and stashes the caller's identity
// into the request context for the layers below.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "please authenticate"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := user.ParseJWT(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "please authenticate"})
			return
		}

		ctx := utils.SetUserContext(c.Request.Context(), claims.UserID, claims.Email, claims.IsAdmin)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// OptionalAuth stashes the caller's identity when a valid bearer token
// is present, but never rejects the request. Lets public endpoints and
// the rate limiter see who is calling without requiring a login.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			if claims, err := user.ParseJWT(strings.TrimPrefix(authHeader, "Bearer ")); err == nil {
				ctx := utils.SetUserContext(c.Request.Context(), claims.UserID, claims.Email, claims.IsAdmin)
				c.Request = c.Request.WithContext(ctx)
			}
		}
		c.Next()
	}
}

// AdminOnly must run after Auth.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !utils.IsAdminFromContext(c.Request.Context()) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}
		c.Next()
	}
}
