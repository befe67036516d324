package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/ZigaLarissa/EduAssist/internal/models"
)

func setSubjectID(s *models.Subject, id string) { s.ID = id }

type SubjectRepository struct {
	client *firestore.Client
}

func NewSubjectRepository(client *firestore.Client) *SubjectRepository {
	return &SubjectRepository{
		client: client,
	}
}

func (r *SubjectRepository) CreateSubject(ctx context.Context, subject *models.Subject) (string, error) {
	docRef, _, err := r.client.Collection(subjectsCollection).Add(ctx, subject)
	if err != nil {
		return "", err
	}
	return docRef.ID, nil
}

// ListSubjectsByClass lists the subjects a teacher teaches in a class
func (r *SubjectRepository) ListSubjectsByClass(ctx context.Context, classID, teacherID string) ([]*models.Subject, error) {
	iter := r.client.Collection(subjectsCollection).
		Where("classId", "==", classID).
		Where("teacherId", "==", teacherID).
		Documents(ctx)

	return readAll(iter, setSubjectID)
}

func (r *SubjectRepository) ListSubjectsByTeacher(ctx context.Context, teacherID string) ([]*models.Subject, error) {
	iter := r.client.Collection(subjectsCollection).
		Where("teacherId", "==", teacherID).
		Documents(ctx)

	return readAll(iter, setSubjectID)
}
