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

// TeacherFeedLimit is the number of announcements shown to teachers
const TeacherFeedLimit = 10

type AnnouncementService struct {
	announcements repository.AnnouncementStore
	classes       repository.ClassStore
	students      repository.StudentStore
	users         repository.UserStore
	images        storage.ImageStore
	notifier      *NotificationService
	log           *logrus.Logger
	now           func() time.Time
}

func NewAnnouncementService(
	announcements repository.AnnouncementStore,
	classes repository.ClassStore,
	students repository.StudentStore,
	users repository.UserStore,
	images storage.ImageStore,
	notifier *NotificationService,
	log *logrus.Logger,
) *AnnouncementService {
	return &AnnouncementService{
		announcements: announcements,
		classes:       classes,
		students:      students,
		users:         users,
		images:        images,
		notifier:      notifier,
		log:           log,
		now:           time.Now,
	}
}

// CreateAnnouncement validates and stores an announcement. image may be nil;
// a failed upload does not fail the announcement.
func (s *AnnouncementService) CreateAnnouncement(ctx context.Context, userID string, req *models.AnnouncementRequest, image io.Reader) (*models.Announcement, error) {
	a := &models.Announcement{
		Title:     strings.TrimSpace(req.Title),
		Text:      strings.TrimSpace(req.Text),
		StartDate: strings.TrimSpace(req.StartDate),
		ClassIDs:  utils.CleanIDs(req.ClassIDs),
		CreatedBy: userID,
	}

	switch {
	case a.Title == "":
		return nil, invalid("please enter an announcement title")
	case a.Text == "":
		return nil, invalid("please enter announcement text")
	case len(a.ClassIDs) == 0:
		return nil, invalid("please select at least one class")
	}
	if err := utils.ValidateDate(a.StartDate); err != nil {
		return nil, invalid(err.Error())
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "user")
	}
	a.TeacherName = teacherName(user)

	if image != nil {
		url, err := uploadImage(ctx, s.images, userID, image, s.now())
		if IsValidation(err) {
			return nil, err
		}
		if err != nil {
			s.log.WithError(err).WithField("userId", userID).Warn("continuing announcement creation without image")
		} else {
			a.ImageURL = url
		}
	}

	id, err := s.announcements.CreateAnnouncement(ctx, a)
	if err != nil {
		return nil, errors.Wrap(err, "create announcement")
	}
	a.ID = id
	a.CreatedAt = s.now()

	s.log.WithFields(logrus.Fields{"announcementId": id, "userId": userID}).Info("announcement created")
	s.notifier.NotifyClasses(ctx, "announcement", id, a.Title, a.Text, a.ClassIDs)
	return a, nil
}

func (s *AnnouncementService) GetAnnouncement(ctx context.Context, announcementID string) (*models.Announcement, error) {
	a, err := s.announcements.GetAnnouncement(ctx, announcementID)
	if err != nil {
		return nil, errors.Wrap(err, "announcement")
	}
	return a, nil
}

// Feed returns the announcements relevant to the user: the latest ones of the
// classes a teacher teaches, or all of those targeting a parent's children.
func (s *AnnouncementService) Feed(ctx context.Context, userID string) ([]*models.Announcement, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "user")
	}

	var (
		classIDs []string
		limit    int
	)
	switch user.Role {
	case models.RoleTeacher:
		classes, err := s.classes.ListClassesByTeacher(ctx, userID)
		if err != nil {
			return nil, err
		}
		for _, c := range classes {
			classIDs = append(classIDs, c.ID)
		}
		limit = TeacherFeedLimit
	case models.RoleParent:
		students, err := s.students.ListStudentsByParentEmail(ctx, strings.ToLower(user.Email))
		if err != nil {
			return nil, err
		}
		for _, st := range students {
			classIDs = append(classIDs, st.ClassID)
		}
	}

	classIDs = utils.CleanIDs(classIDs)
	if len(classIDs) == 0 {
		return []*models.Announcement{}, nil
	}
	return s.announcements.ListAnnouncementsForClasses(ctx, classIDs, limit)
}
