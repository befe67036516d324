package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/ZigaLarissa/EduAssist/internal/models"
	"github.com/gin-gonic/gin"
)

// HomeworkManager is what HomeworkHandler needs from the homework service
type HomeworkManager interface {
	CreateHomework(ctx context.Context, userID string, req *models.HomeworkRequest, image io.Reader) (*models.Homework, error)
	GetHomework(ctx context.Context, homeworkID string) (*models.Homework, error)
	ClassHomeworks(ctx context.Context, classID string) ([]*models.Homework, error)
	ToggleCompleted(ctx context.Context, homeworkID string) (bool, error)
	Recommend(ctx context.Context, homeworkID string) (*models.Recommendation, error)
}

type HomeworkHandler struct {
	homeworks HomeworkManager
}

func NewHomeworkHandler(homeworks HomeworkManager) *HomeworkHandler {
	return &HomeworkHandler{
		homeworks: homeworks,
	}
}

// CreateHomework publishes a homework from a multipart form with an optional image
func (h *HomeworkHandler) CreateHomework(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req models.HomeworkRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.ClassIDs = splitIDs(req.ClassIDs)
	req.SubjectIDs = splitIDs(req.SubjectIDs)

	image, closeImage, err := formImage(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image upload"})
		return
	}
	defer closeImage()

	hw, err := h.homeworks.CreateHomework(c.Request.Context(), userID, &req, image)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"homework": hw})
}

func (h *HomeworkHandler) GetHomework(c *gin.Context) {
	hw, err := h.homeworks.GetHomework(c.Request.Context(), c.Param("homeworkId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"homework": hw})
}

func (h *HomeworkHandler) GetClassHomeworks(c *gin.Context) {
	homeworks, err := h.homeworks.ClassHomeworks(c.Request.Context(), c.Param("classId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"homeworks": homeworks})
}

func (h *HomeworkHandler) ToggleComplete(c *gin.Context) {
	completed, err := h.homeworks.ToggleCompleted(c.Request.Context(), c.Param("homeworkId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"completed": completed})
}

// GetRecommendation asks the recommender for a resource for the homework
func (h *HomeworkHandler) GetRecommendation(c *gin.Context) {
	rec, err := h.homeworks.Recommend(c.Request.Context(), c.Param("homeworkId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recommendation": rec})
}
