package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/ZigaLarissa/EduAssist/internal/models"
)

func setStudentID(s *models.Student, id string) { s.ID = id }

type StudentRepository struct {
	client *firestore.Client
}

func NewStudentRepository(client *firestore.Client) *StudentRepository {
	return &StudentRepository{
		client: client,
	}
}

func (r *StudentRepository) CreateStudent(ctx context.Context, student *models.Student) (string, error) {
	docRef, _, err := r.client.Collection(studentsCollection).Add(ctx, student)
	if err != nil {
		return "", err
	}
	return docRef.ID, nil
}

func (r *StudentRepository) GetStudent(ctx context.Context, studentID string) (*models.Student, error) {
	return getDoc(ctx, r.client.Collection(studentsCollection).Doc(studentID), setStudentID)
}

// UpdateStudent overwrites the student document, keeping its ID
func (r *StudentRepository) UpdateStudent(ctx context.Context, student *models.Student) error {
	ref := r.client.Collection(studentsCollection).Doc(student.ID)
	_, err := ref.Set(ctx, student)
	return err
}

func (r *StudentRepository) DeleteStudent(ctx context.Context, studentID string) error {
	_, err := r.client.Collection(studentsCollection).Doc(studentID).Delete(ctx)
	return err
}

// ListStudentsByClass lists the students of a class, newest first
func (r *StudentRepository) ListStudentsByClass(ctx context.Context, classID string) ([]*models.Student, error) {
	iter := r.client.Collection(studentsCollection).
		Where("classId", "==", classID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)

	return readAll(iter, setStudentID)
}

// ListStudentsByParentEmail lists the students linked to a parent
func (r *StudentRepository) ListStudentsByParentEmail(ctx context.Context, email string) ([]*models.Student, error) {
	iter := r.client.Collection(studentsCollection).
		Where("parentInfo.email", "==", email).
		Documents(ctx)

	return readAll(iter, setStudentID)
}
