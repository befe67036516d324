package services

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/ZigaLarissa/EduAssist/internal/models"
	"github.com/ZigaLarissa/EduAssist/internal/repository"
	"github.com/ZigaLarissa/EduAssist/internal/storage"
	"github.com/ZigaLarissa/EduAssist/pkg/utils"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type HomeworkService struct {
	homeworks   repository.HomeworkStore
	classes     repository.ClassStore
	users       repository.UserStore
	images      storage.ImageStore
	recommender Recommender
	notifier    *NotificationService
	log         *logrus.Logger
	now         func() time.Time
}

func NewHomeworkService(
	homeworks repository.HomeworkStore,
	classes repository.ClassStore,
	users repository.UserStore,
	images storage.ImageStore,
	recommender Recommender,
	notifier *NotificationService,
	log *logrus.Logger,
) *HomeworkService {
	return &HomeworkService{
		homeworks:   homeworks,
		classes:     classes,
		users:       users,
		images:      images,
		recommender: recommender,
		notifier:    notifier,
		log:         log,
		now:         time.Now,
	}
}

// CreateHomework validates and stores a homework. image may be nil.
func (s *HomeworkService) CreateHomework(ctx context.Context, userID string, req *models.HomeworkRequest, image io.Reader) (*models.Homework, error) {
	hw := &models.Homework{
		Title:      strings.TrimSpace(req.Title),
		Text:       strings.TrimSpace(req.Text),
		DueDate:    strings.TrimSpace(req.DueDate),
		ClassIDs:   utils.CleanIDs(req.ClassIDs),
		SubjectIDs: utils.CleanIDs(req.SubjectIDs),
		CreatedBy:  userID,
	}

	switch {
	case hw.Title == "":
		return nil, invalid("please enter homework title")
	case hw.Text == "":
		return nil, invalid("please enter homework text")
	case len(hw.ClassIDs) == 0:
		return nil, invalid("please select at least one class")
	case len(hw.SubjectIDs) == 0:
		return nil, invalid("please select at least one subject")
	}
	if err := utils.ValidateDate(hw.DueDate); err != nil {
		return nil, invalid(err.Error())
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "user")
	}
	hw.TeacherName = teacherName(user)

	if image != nil {
		url, err := uploadImage(ctx, s.images, userID, image, s.now())
		if err != nil {
			return nil, errors.Wrap(err, "upload homework image")
		}
		hw.ImageURL = url
	}

	id, err := s.homeworks.CreateHomework(ctx, hw)
	if err != nil {
		return nil, errors.Wrap(err, "create homework")
	}
	hw.ID = id
	hw.CreatedAt = s.now()

	s.log.WithFields(logrus.Fields{"homeworkId": id, "userId": userID}).Info("homework created")
	s.notifier.NotifyClasses(ctx, "homework", id, "New homework: "+hw.Title, hw.Text, hw.ClassIDs)
	return hw, nil
}

func (s *HomeworkService) GetHomework(ctx context.Context, homeworkID string) (*models.Homework, error) {
	hw, err := s.homeworks.GetHomework(ctx, homeworkID)
	if err != nil {
		return nil, errors.Wrap(err, "homework")
	}
	return hw, nil
}

func (s *HomeworkService) ClassHomeworks(ctx context.Context, classID string) ([]*models.Homework, error) {
	return s.homeworks.ListHomeworksByClass(ctx, classID)
}

// ToggleCompleted flips the homework's completed flag and returns the new value
func (s *HomeworkService) ToggleCompleted(ctx context.Context, homeworkID string) (bool, error) {
	hw, err := s.homeworks.GetHomework(ctx, homeworkID)
	if err != nil {
		return false, errors.Wrap(err, "homework")
	}

	completed := !hw.Completed
	if err := s.homeworks.SetCompleted(ctx, homeworkID, completed); err != nil {
		return false, errors.Wrap(err, "update homework status")
	}
	return completed, nil
}

// Recommend asks the recommender for a resource matching the homework. The
// grade level is the name of the homework's first class.
func (s *HomeworkService) Recommend(ctx context.Context, homeworkID string) (*models.Recommendation, error) {
	hw, err := s.homeworks.GetHomework(ctx, homeworkID)
	if err != nil {
		return nil, errors.Wrap(err, "homework")
	}

	req := &models.RecommendationRequest{Description: hw.Text}
	if len(hw.ClassIDs) > 0 {
		class, err := s.classes.GetClass(ctx, hw.ClassIDs[0])
		if err != nil {
			s.log.WithError(err).WithField("classId", hw.ClassIDs[0]).Warn("failed to load class for grade level")
		} else {
			req.GradeLevel = class.Name
		}
	}

	rec, err := s.recommender.Recommend(ctx, req)
	if err != nil {
		return nil, err
	}
	if rec.GradeLevel == "" {
		rec.GradeLevel = req.GradeLevel
	}
	return rec, nil
}

func teacherName(user *models.User) string {
	if user.Username != "" {
		return user.Username
	}
	return user.Email
}
