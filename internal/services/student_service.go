package services

import (
	"context"
	"strings"
	"time"

	"github.com/ZigaLarissa/EduAssist/internal/models"
	"github.com/ZigaLarissa/EduAssist/internal/repository"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type StudentService struct {
	students repository.StudentStore
	classes  repository.ClassStore
	users    repository.UserStore
	notifier *NotificationService
	log      *logrus.Logger
	now      func() time.Time
}

func NewStudentService(students repository.StudentStore, classes repository.ClassStore, users repository.UserStore, notifier *NotificationService, log *logrus.Logger) *StudentService {
	return &StudentService{
		students: students,
		classes:  classes,
		users:    users,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

func (s *StudentService) fromRequest(ctx context.Context, userID string, req *models.StudentRequest) (*models.Student, error) {
	student := &models.Student{
		Surname:    strings.TrimSpace(req.Surname),
		LastName:   strings.TrimSpace(req.LastName),
		Position:   strings.TrimSpace(req.Position),
		Percentage: strings.TrimSpace(req.Percentage),
		ParentInfo: models.ParentInfo{
			Surname:  strings.TrimSpace(req.ParentInfo.Surname),
			LastName: strings.TrimSpace(req.ParentInfo.LastName),
			Email:    strings.TrimSpace(strings.ToLower(req.ParentInfo.Email)),
		},
		ClassID:   strings.TrimSpace(req.ClassID),
		TeacherID: userID,
	}

	if student.Surname == "" || student.LastName == "" || student.Position == "" {
		return nil, invalid("please fill in all required fields")
	}
	if student.ClassID == "" {
		return nil, invalid("please select a class for the student")
	}
	if student.Percentage == "" {
		student.Percentage = "0"
	}
	if _, err := s.classes.GetClass(ctx, student.ClassID); err != nil {
		return nil, errors.Wrap(err, "class")
	}
	return student, nil
}

// AddStudent stores a new student for the user's class
func (s *StudentService) AddStudent(ctx context.Context, userID string, req *models.StudentRequest) (*models.Student, error) {
	student, err := s.fromRequest(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	now := s.now()
	student.CreatedAt = now
	student.UpdatedAt = now

	id, err := s.students.CreateStudent(ctx, student)
	if err != nil {
		return nil, errors.Wrap(err, "add student")
	}
	student.ID = id

	s.log.WithFields(logrus.Fields{"studentId": id, "classId": student.ClassID}).Info("student added")
	s.subscribeParent(ctx, student)
	return student, nil
}

// subscribeParent puts the parent's device on the student's class topic. A
// parent without an account is subscribed once they register a device.
func (s *StudentService) subscribeParent(ctx context.Context, student *models.Student) {
	if student.ParentInfo.Email == "" {
		return
	}
	parent, err := s.users.GetUserByEmail(ctx, student.ParentInfo.Email)
	if errors.Is(err, ErrNotFound) {
		return
	}
	if err != nil {
		s.log.WithError(err).WithField("studentId", student.ID).Warn("failed to load parent for topic subscription")
		return
	}
	s.notifier.SubscribeUser(ctx, parent, student.ClassID)
}

// UpdateStudent replaces a student's fields, keeping its creation time
func (s *StudentService) UpdateStudent(ctx context.Context, userID, studentID string, req *models.StudentRequest) (*models.Student, error) {
	existing, err := s.students.GetStudent(ctx, studentID)
	if err != nil {
		return nil, errors.Wrap(err, "student")
	}

	student, err := s.fromRequest(ctx, userID, req)
	if err != nil {
		return nil, err
	}
	student.ID = studentID
	student.CreatedAt = existing.CreatedAt
	student.UpdatedAt = s.now()

	if err := s.students.UpdateStudent(ctx, student); err != nil {
		return nil, errors.Wrap(err, "update student")
	}
	s.subscribeParent(ctx, student)
	return student, nil
}

func (s *StudentService) DeleteStudent(ctx context.Context, studentID string) error {
	if _, err := s.students.GetStudent(ctx, studentID); err != nil {
		return errors.Wrap(err, "student")
	}
	return s.students.DeleteStudent(ctx, studentID)
}

// ClassStudents lists every student of a class, whichever teacher added them
func (s *StudentService) ClassStudents(ctx context.Context, classID string) ([]*models.Student, error) {
	return s.students.ListStudentsByClass(ctx, classID)
}

// ParentStudents lists the students linked to the parent's email
func (s *StudentService) ParentStudents(ctx context.Context, userID string) ([]*models.Student, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "user")
	}
	if user.Email == "" {
		return []*models.Student{}, nil
	}
	return s.students.ListStudentsByParentEmail(ctx, strings.ToLower(user.Email))
}
