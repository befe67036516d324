package handlers

import (
	"context"
	"net/http"

	"github.com/ZigaLarissa/EduAssist/internal/models"
	"github.com/ZigaLarissa/EduAssist/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// AccountService is what AuthHandler needs from the auth service
type AccountService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	Me(ctx context.Context, userID string) (*models.User, error)
	UpdateFCMToken(ctx context.Context, userID, fcmToken string) error
	Logout(ctx context.Context, userID string) error
}

type AuthHandler struct {
	auth AccountService
}

func NewAuthHandler(auth AccountService) *AuthHandler {
	return &AuthHandler{
		auth: auth,
	}
}

// Register creates an account and signs it in
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.auth.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Login signs a user in with email and password
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.auth.Login(c.Request.Context(), &req)
	if err != nil {
		var authErr *services.AuthError
		if errors.As(err, &authErr) {
			_ = c.Error(err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": authErr.Message})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Me returns the caller's profile
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	user, err := h.auth.Me(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateFCMToken stores the caller's device token
func (h *AuthHandler) UpdateFCMToken(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req models.UpdateFCMTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.auth.UpdateFCMToken(c.Request.Context(), userID, req.FCMToken); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Logout revokes the caller's sessions
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.auth.Logout(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
