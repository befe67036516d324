package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/ZigaLarissa/EduAssist/internal/models"
)

func setHomeworkID(h *models.Homework, id string) { h.ID = id }

type HomeworkRepository struct {
	client *firestore.Client
}

func NewHomeworkRepository(client *firestore.Client) *HomeworkRepository {
	return &HomeworkRepository{
		client: client,
	}
}

func (r *HomeworkRepository) CreateHomework(ctx context.Context, hw *models.Homework) (string, error) {
	docRef, _, err := r.client.Collection(homeworksCollection).Add(ctx, hw)
	if err != nil {
		return "", err
	}
	return docRef.ID, nil
}

func (r *HomeworkRepository) GetHomework(ctx context.Context, homeworkID string) (*models.Homework, error) {
	return getDoc(ctx, r.client.Collection(homeworksCollection).Doc(homeworkID), setHomeworkID)
}

// ListHomeworksByClass lists homework published to a class
func (r *HomeworkRepository) ListHomeworksByClass(ctx context.Context, classID string) ([]*models.Homework, error) {
	iter := r.client.Collection(homeworksCollection).
		Where("classIds", "array-contains", classID).
		Documents(ctx)

	return readAll(iter, setHomeworkID)
}

func (r *HomeworkRepository) SetCompleted(ctx context.Context, homeworkID string, completed bool) error {
	_, err := r.client.Collection(homeworksCollection).Doc(homeworkID).Update(ctx, []firestore.Update{
		{Path: "completed", Value: completed},
	})
	if isNotFound(err) {
		return ErrNotFound
	}
	return err
}
