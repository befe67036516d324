package handlers

import (
	"context"
	"net/http"

	"github.com/ZigaLarissa/EduAssist/internal/models"
	"github.com/gin-gonic/gin"
)

// StudentManager is what StudentHandler needs from the student service
type StudentManager interface {
	AddStudent(ctx context.Context, userID string, req *models.StudentRequest) (*models.Student, error)
	UpdateStudent(ctx context.Context, userID, studentID string, req *models.StudentRequest) (*models.Student, error)
	DeleteStudent(ctx context.Context, studentID string) error
	ClassStudents(ctx context.Context, classID string) ([]*models.Student, error)
	ParentStudents(ctx context.Context, userID string) ([]*models.Student, error)
}

type StudentHandler struct {
	students StudentManager
}

func NewStudentHandler(students StudentManager) *StudentHandler {
	return &StudentHandler{
		students: students,
	}
}

func (h *StudentHandler) AddStudent(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req models.StudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	student, err := h.students.AddStudent(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"student": student})
}

func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req models.StudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	student, err := h.students.UpdateStudent(c.Request.Context(), userID, c.Param("studentId"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"student": student})
}

func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	if err := h.students.DeleteStudent(c.Request.Context(), c.Param("studentId")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetClassStudents returns every student of a class
func (h *StudentHandler) GetClassStudents(c *gin.Context) {
	students, err := h.students.ClassStudents(c.Request.Context(), c.Param("classId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"students": students})
}

// GetMyStudents returns the students linked to the calling parent
func (h *StudentHandler) GetMyStudents(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	students, err := h.students.ParentStudents(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"students": students})
}
