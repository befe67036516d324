package repository

import (
	"context"

	"github.com/ZigaLarissa/EduAssist/internal/models"
	"github.com/pkg/errors"
)

// ErrNotFound is returned when a requested document does not exist
var ErrNotFound = errors.New("not found")

// UserStore persists user profiles
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	// GetUserByEmail returns ErrNotFound when no profile uses email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateFCMToken(ctx context.Context, userID, fcmToken string) error
	// ListUsers returns all users with the given role, or every user when role is empty.
	ListUsers(ctx context.Context, role models.Role) ([]*models.User, error)
}

// ClassStore persists classes
type ClassStore interface {
	CreateClass(ctx context.Context, class *models.Class) (string, error)
	GetClass(ctx context.Context, classID string) (*models.Class, error)
	ListClassesByTeacher(ctx context.Context, teacherID string) ([]*models.Class, error)
	ListAllClasses(ctx context.Context) ([]*models.Class, error)
	AddTeacher(ctx context.Context, classID, teacherID string) error
}

// SubjectStore persists subjects
type SubjectStore interface {
	CreateSubject(ctx context.Context, subject *models.Subject) (string, error)
	ListSubjectsByClass(ctx context.Context, classID, teacherID string) ([]*models.Subject, error)
	ListSubjectsByTeacher(ctx context.Context, teacherID string) ([]*models.Subject, error)
}

// StudentStore persists students
type StudentStore interface {
	CreateStudent(ctx context.Context, student *models.Student) (string, error)
	GetStudent(ctx context.Context, studentID string) (*models.Student, error)
	UpdateStudent(ctx context.Context, student *models.Student) error
	DeleteStudent(ctx context.Context, studentID string) error
	ListStudentsByClass(ctx context.Context, classID string) ([]*models.Student, error)
	ListStudentsByParentEmail(ctx context.Context, email string) ([]*models.Student, error)
}

// HomeworkStore persists homework
type HomeworkStore interface {
	CreateHomework(ctx context.Context, hw *models.Homework) (string, error)
	GetHomework(ctx context.Context, homeworkID string) (*models.Homework, error)
	ListHomeworksByClass(ctx context.Context, classID string) ([]*models.Homework, error)
	SetCompleted(ctx context.Context, homeworkID string, completed bool) error
}

// AnnouncementStore persists announcements
type AnnouncementStore interface {
	CreateAnnouncement(ctx context.Context, a *models.Announcement) (string, error)
	GetAnnouncement(ctx context.Context, announcementID string) (*models.Announcement, error)
	// ListAnnouncementsForClasses returns announcements targeting any of
	// classIDs, newest first. A limit of zero means no limit.
	ListAnnouncementsForClasses(ctx context.Context, classIDs []string, limit int) ([]*models.Announcement, error)
}

// ChatStore persists chats and their messages
type ChatStore interface {
	// FindChat returns the chat between the two users, or nil when there is none.
	FindChat(ctx context.Context, userID, otherUserID string) (*models.Chat, error)
	// CreateOrGetChat atomically returns the existing chat between the
	// participants of chat, or stores chat and reports created.
	CreateOrGetChat(ctx context.Context, chat *models.Chat) (*models.Chat, bool, error)
	GetChat(ctx context.Context, chatID string) (*models.Chat, error)
	ListChatsForUser(ctx context.Context, userID string) ([]*models.Chat, error)
	WatchChatsForUser(ctx context.Context, userID string, fn func([]*models.Chat) error) error
	AddMessage(ctx context.Context, chatID string, msg *models.Message) error
	ListMessages(ctx context.Context, chatID string) ([]*models.Message, error)
	WatchMessages(ctx context.Context, chatID string, fn func([]*models.Message) error) error
}
