package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/ZigaLarissa/EduAssist/internal/models"
	"github.com/gin-gonic/gin"
)

// Authenticator resolves an ID token to a user ID
type Authenticator interface {
	Authenticate(ctx context.Context, idToken string) (string, error)
}

// ProfileLoader loads the profile of an authenticated user
type ProfileLoader interface {
	Me(ctx context.Context, userID string) (*models.User, error)
}

// AuthMiddleware validates the authorization token
func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			return
		}

		token := parts[1]
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token is required"})
			return
		}

		userID, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set("userID", userID)
		c.Set("token", token)
		c.Next()
	}
}

// RequireRole lets only users holding role through. It must run after AuthMiddleware.
func RequireRole(profiles ProfileLoader, role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := profiles.Me(c.Request.Context(), c.GetString("userID"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user profile not found"})
			return
		}
		if user.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "only " + string(role) + "s can do this"})
			return
		}

		c.Set("user", user)
		c.Next()
	}
}
