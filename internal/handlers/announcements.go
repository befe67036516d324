package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/ZigaLarissa/EduAssist/internal/models"
	"github.com/gin-gonic/gin"
)

// AnnouncementManager is what AnnouncementHandler needs from the announcement service
type AnnouncementManager interface {
	CreateAnnouncement(ctx context.Context, userID string, req *models.AnnouncementRequest, image io.Reader) (*models.Announcement, error)
	GetAnnouncement(ctx context.Context, announcementID string) (*models.Announcement, error)
	Feed(ctx context.Context, userID string) ([]*models.Announcement, error)
}

type AnnouncementHandler struct {
	announcements AnnouncementManager
}

func NewAnnouncementHandler(announcements AnnouncementManager) *AnnouncementHandler {
	return &AnnouncementHandler{
		announcements: announcements,
	}
}

func (h *AnnouncementHandler) CreateAnnouncement(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req models.AnnouncementRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.ClassIDs = splitIDs(req.ClassIDs)

	image, closeImage, err := formImage(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image upload"})
		return
	}
	defer closeImage()

	a, err := h.announcements.CreateAnnouncement(c.Request.Context(), userID, &req, image)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"announcement": a})
}

func (h *AnnouncementHandler) GetAnnouncement(c *gin.Context) {
	a, err := h.announcements.GetAnnouncement(c.Request.Context(), c.Param("announcementId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"announcement": a})
}

// GetFeed returns the announcements relevant to the caller's role
func (h *AnnouncementHandler) GetFeed(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	feed, err := h.announcements.Feed(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"announcements": feed})
}
