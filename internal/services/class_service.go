package services

import (
	"context"
	"strings"

	"github.com/ZigaLarissa/EduAssist/internal/models"
	"github.com/ZigaLarissa/EduAssist/internal/repository"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type ClassService struct {
	classes  repository.ClassStore
	subjects repository.SubjectStore
	users    repository.UserStore
	notifier *NotificationService
	log      *logrus.Logger
}

func NewClassService(classes repository.ClassStore, subjects repository.SubjectStore, users repository.UserStore, notifier *NotificationService, log *logrus.Logger) *ClassService {
	return &ClassService{
		classes:  classes,
		subjects: subjects,
		users:    users,
		notifier: notifier,
		log:      log,
	}
}

// subscribe puts the teacher's device on the class topic
func (s *ClassService) subscribe(ctx context.Context, userID, classID string) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		s.log.WithError(err).WithField("userId", userID).Warn("failed to load user for topic subscription")
		return
	}
	s.notifier.SubscribeUser(ctx, user, classID)
}

// CreateClass creates a class taught by its creator
func (s *ClassService) CreateClass(ctx context.Context, userID, name string) (*models.Class, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("please enter a class name")
	}

	class := &models.Class{
		Name:       name,
		TeacherIDs: []string{userID},
		CreatedBy:  userID,
	}
	id, err := s.classes.CreateClass(ctx, class)
	if err != nil {
		return nil, errors.Wrap(err, "create class")
	}
	class.ID = id

	s.log.WithFields(logrus.Fields{"classId": id, "userId": userID}).Info("class created")
	s.subscribe(ctx, userID, id)
	return class, nil
}

func (s *ClassService) GetClass(ctx context.Context, classID string) (*models.Class, error) {
	class, err := s.classes.GetClass(ctx, classID)
	if err != nil {
		return nil, errors.Wrap(err, "class")
	}
	return class, nil
}

// JoinedClasses lists the classes the user teaches
func (s *ClassService) JoinedClasses(ctx context.Context, userID string) ([]*models.Class, error) {
	return s.classes.ListClassesByTeacher(ctx, userID)
}

// AvailableClasses lists the classes the user has not joined yet. Firestore
// has no "array does not contain" filter, so this filters client side.
func (s *ClassService) AvailableClasses(ctx context.Context, userID string) ([]*models.Class, error) {
	all, err := s.classes.ListAllClasses(ctx)
	if err != nil {
		return nil, err
	}

	available := []*models.Class{}
	for _, class := range all {
		if !class.HasTeacher(userID) {
			available = append(available, class)
		}
	}
	return available, nil
}

// JoinClass adds the user to the class's teachers
func (s *ClassService) JoinClass(ctx context.Context, userID, classID string) (*models.Class, error) {
	class, err := s.classes.GetClass(ctx, classID)
	if err != nil {
		return nil, errors.Wrap(err, "class")
	}
	if class.HasTeacher(userID) {
		return class, nil
	}

	if err := s.classes.AddTeacher(ctx, classID, userID); err != nil {
		return nil, errors.Wrap(err, "join class")
	}
	class.TeacherIDs = append(class.TeacherIDs, userID)

	s.log.WithFields(logrus.Fields{"classId": classID, "userId": userID}).Info("teacher joined class")
	s.subscribe(ctx, userID, classID)
	return class, nil
}

// CreateSubject adds a subject the user teaches in a class
func (s *ClassService) CreateSubject(ctx context.Context, userID, classID, name string) (*models.Subject, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("please enter a new subject")
	}
	if _, err := s.classes.GetClass(ctx, classID); err != nil {
		return nil, errors.Wrap(err, "class")
	}

	subject := &models.Subject{
		Name:      name,
		ClassID:   classID,
		TeacherID: userID,
	}
	id, err := s.subjects.CreateSubject(ctx, subject)
	if err != nil {
		return nil, errors.Wrap(err, "create subject")
	}
	subject.ID = id
	return subject, nil
}

// ClassSubjects lists the user's subjects in a class
func (s *ClassService) ClassSubjects(ctx context.Context, userID, classID string) ([]*models.Subject, error) {
	return s.subjects.ListSubjectsByClass(ctx, classID, userID)
}

// TeacherSubjects lists all of the user's subjects
func (s *ClassService) TeacherSubjects(ctx context.Context, userID string) ([]*models.Subject, error) {
	return s.subjects.ListSubjectsByTeacher(ctx, userID)
}
