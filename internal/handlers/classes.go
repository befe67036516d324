package handlers

import (
	"context"
	"net/http"

	"github.com/ZigaLarissa/EduAssist/internal/models"
	"github.com/gin-gonic/gin"
)

// ClassManager is what ClassHandler needs from the class service
type ClassManager interface {
	CreateClass(ctx context.Context, userID, name string) (*models.Class, error)
	GetClass(ctx context.Context, classID string) (*models.Class, error)
	JoinedClasses(ctx context.Context, userID string) ([]*models.Class, error)
	AvailableClasses(ctx context.Context, userID string) ([]*models.Class, error)
	JoinClass(ctx context.Context, userID, classID string) (*models.Class, error)
	CreateSubject(ctx context.Context, userID, classID, name string) (*models.Subject, error)
	ClassSubjects(ctx context.Context, userID, classID string) ([]*models.Subject, error)
	TeacherSubjects(ctx context.Context, userID string) ([]*models.Subject, error)
}

type ClassHandler struct {
	classes ClassManager
}

func NewClassHandler(classes ClassManager) *ClassHandler {
	return &ClassHandler{
		classes: classes,
	}
}

// GetJoinedClasses returns the classes the caller teaches
func (h *ClassHandler) GetJoinedClasses(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	classes, err := h.classes.JoinedClasses(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"classes": classes})
}

// GetAvailableClasses returns the classes the caller has not joined
func (h *ClassHandler) GetAvailableClasses(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	classes, err := h.classes.AvailableClasses(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"classes": classes})
}

func (h *ClassHandler) CreateClass(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req models.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	class, err := h.classes.CreateClass(c.Request.Context(), userID, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"class": class})
}

func (h *ClassHandler) GetClass(c *gin.Context) {
	class, err := h.classes.GetClass(c.Request.Context(), c.Param("classId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"class": class})
}

// JoinClass adds the caller to a class's teachers
func (h *ClassHandler) JoinClass(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	class, err := h.classes.JoinClass(c.Request.Context(), userID, c.Param("classId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"class": class})
}

// GetClassSubjects returns the caller's subjects in a class
func (h *ClassHandler) GetClassSubjects(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	subjects, err := h.classes.ClassSubjects(c.Request.Context(), userID, c.Param("classId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"subjects": subjects})
}

func (h *ClassHandler) CreateSubject(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req models.CreateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	subject, err := h.classes.CreateSubject(c.Request.Context(), userID, c.Param("classId"), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"subject": subject})
}

// GetSubjects returns all of the caller's subjects
func (h *ClassHandler) GetSubjects(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	subjects, err := h.classes.TeacherSubjects(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"subjects": subjects})
}
