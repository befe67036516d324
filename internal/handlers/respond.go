package handlers

import (
	"net/http"
	"strconv"

	"github.com/ZigaLarissa/EduAssist/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// respondError maps service errors to a status code and writes {"error": message}
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	var authErr *services.AuthError
	switch {
	case services.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &authErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": authErr.Message})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNoRecommendation):
		c.JSON(http.StatusNotFound, gin.H{"error": services.ErrNoRecommendation.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// currentUser returns the authenticated user's ID, answering 401 when there is none
func currentUser(c *gin.Context) (string, bool) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return "", false
	}
	return userID, true
}

// queryInt parses a positive integer query parameter, falling back to def
func queryInt(c *gin.Context, name string, def int) int {
	if s := c.Query(name); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			return v
		}
	}
	return def
}
