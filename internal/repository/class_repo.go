package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/ZigaLarissa/EduAssist/internal/models"
)

func setClassID(c *models.Class, id string) { c.ID = id }

type ClassRepository struct {
	client *firestore.Client
}

func NewClassRepository(client *firestore.Client) *ClassRepository {
	return &ClassRepository{
		client: client,
	}
}

// CreateClass stores a new class and returns its generated ID
func (r *ClassRepository) CreateClass(ctx context.Context, class *models.Class) (string, error) {
	docRef, _, err := r.client.Collection(classesCollection).Add(ctx, class)
	if err != nil {
		return "", err
	}
	return docRef.ID, nil
}

// GetClass retrieves a class by ID
func (r *ClassRepository) GetClass(ctx context.Context, classID string) (*models.Class, error) {
	return getDoc(ctx, r.client.Collection(classesCollection).Doc(classID), setClassID)
}

// ListClassesByTeacher lists the classes a teacher has joined
func (r *ClassRepository) ListClassesByTeacher(ctx context.Context, teacherID string) ([]*models.Class, error) {
	iter := r.client.Collection(classesCollection).
		Where("teacherIds", "array-contains", teacherID).
		Documents(ctx)

	return readAll(iter, setClassID)
}

// ListAllClasses lists every class
func (r *ClassRepository) ListAllClasses(ctx context.Context) ([]*models.Class, error) {
	return readAll(r.client.Collection(classesCollection).Documents(ctx), setClassID)
}

// AddTeacher adds a teacher to the class, ignoring teachers already present
func (r *ClassRepository) AddTeacher(ctx context.Context, classID, teacherID string) error {
	_, err := r.client.Collection(classesCollection).Doc(classID).Update(ctx, []firestore.Update{
		{Path: "teacherIds", Value: firestore.ArrayUnion(teacherID)},
	})
	if isNotFound(err) {
		return ErrNotFound
	}
	return err
}
