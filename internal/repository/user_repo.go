package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/ZigaLarissa/EduAssist/internal/models"
)

type UserRepository struct {
	client *firestore.Client
}

func NewUserRepository(client *firestore.Client) *UserRepository {
	return &UserRepository{
		client: client,
	}
}

// CreateUser creates the profile document keyed by the Firebase UID
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	_, err := r.client.Collection(usersCollection).Doc(user.UserID).Set(ctx, user)
	return err
}

// GetUserByID retrieves a user by their ID
func (r *UserRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	return getDoc[models.User](ctx, r.client.Collection(usersCollection).Doc(userID), func(u *models.User, id string) {
		if u.UserID == "" {
			u.UserID = id
		}
	})
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	q := r.client.Collection(usersCollection).Where("email", "==", email).Limit(1)
	users, err := readAll(q.Documents(ctx), func(u *models.User, id string) {
		if u.UserID == "" {
			u.UserID = id
		}
	})
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, ErrNotFound
	}
	return users[0], nil
}

// UpdateFCMToken updates the user's FCM token
func (r *UserRepository) UpdateFCMToken(ctx context.Context, userID, fcmToken string) error {
	_, err := r.client.Collection(usersCollection).Doc(userID).Update(ctx, []firestore.Update{
		{Path: "fcmToken", Value: fcmToken},
	})
	if isNotFound(err) {
		return ErrNotFound
	}
	return err
}

// ListUsers lists users, optionally filtered by role
func (r *UserRepository) ListUsers(ctx context.Context, role models.Role) ([]*models.User, error) {
	q := r.client.Collection(usersCollection).Query
	if role != "" {
		q = q.Where("role", "==", string(role))
	}

	return readAll(q.Documents(ctx), func(u *models.User, id string) {
		if u.UserID == "" {
			u.UserID = id
		}
	})
}
