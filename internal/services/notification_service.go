package services

import (
	"context"

	"firebase.google.com/go/v4/messaging"
	"github.com/ZigaLarissa/EduAssist/internal/metrics"
	"github.com/ZigaLarissa/EduAssist/internal/models"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Messenger is the subset of the FCM client the service uses
type Messenger interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
	SubscribeToTopic(ctx context.Context, tokens []string, topic string) (*messaging.TopicManagementResponse, error)
}

// ClassTopic is the FCM topic members of a class are subscribed to
func ClassTopic(classID string) string {
	return "class_" + classID
}

type NotificationService struct {
	messenger Messenger
	log       *logrus.Logger
}

// NewNotificationService creates the service. A nil messenger disables push.
func NewNotificationService(messenger Messenger, log *logrus.Logger) *NotificationService {
	return &NotificationService{
		messenger: messenger,
		log:       log,
	}
}

// NotifyNewMessage pushes a chat message to its recipient. Failures are
// logged and never returned.
func (s *NotificationService) NotifyNewMessage(ctx context.Context, recipient *models.User, senderName, chatID, text string) {
	if s == nil || s.messenger == nil {
		return
	}
	if recipient == nil || recipient.FCMToken == "" {
		s.log.WithField("chatId", chatID).Debug("recipient has no FCM token")
		return
	}

	message := &messaging.Message{
		Token: recipient.FCMToken,
		Notification: &messaging.Notification{
			Title: senderName,
			Body:  preview(text, 120),
		},
		Data: map[string]string{
			"type":   "chat_message",
			"chatId": chatID,
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "chat_messages",
			},
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
				},
			},
		},
	}

	if _, err := s.messenger.Send(ctx, message); err != nil {
		metrics.PushFailures.WithLabelValues("chat_message").Inc()
		s.log.WithError(err).WithFields(logrus.Fields{
			"chatId": chatID,
			"userId": recipient.UserID,
		}).Warn("failed to send chat notification")
	}
}

// NotifyClasses pushes a notice to every class topic. kind is "announcement" or "homework".
func (s *NotificationService) NotifyClasses(ctx context.Context, kind, id, title, body string, classIDs []string) {
	if s == nil || s.messenger == nil {
		return
	}

	for _, classID := range classIDs {
		message := &messaging.Message{
			Topic: ClassTopic(classID),
			Notification: &messaging.Notification{
				Title: title,
				Body:  preview(body, 120),
			},
			Data: map[string]string{
				"type":    kind,
				"id":      id,
				"classId": classID,
			},
		}
		if _, err := s.messenger.Send(ctx, message); err != nil {
			metrics.PushFailures.WithLabelValues(kind).Inc()
			s.log.WithError(err).WithField("classId", classID).Warnf("failed to send %s notification", kind)
		}
	}
}

// SubscribeToClasses subscribes a device token to the topics of classIDs
func (s *NotificationService) SubscribeToClasses(ctx context.Context, token string, classIDs []string) error {
	if s == nil || s.messenger == nil || token == "" {
		return nil
	}

	for _, classID := range classIDs {
		resp, err := s.messenger.SubscribeToTopic(ctx, []string{token}, ClassTopic(classID))
		if err != nil {
			return errors.Wrapf(err, "subscribe to %s", ClassTopic(classID))
		}
		if resp != nil && resp.FailureCount > 0 {
			return errors.Errorf("subscribe to %s: %d failures", ClassTopic(classID), resp.FailureCount)
		}
	}
	return nil
}

// SubscribeUser subscribes the user's device to a class topic. Failures are
// logged; the device catches up the next time it sends its token.
func (s *NotificationService) SubscribeUser(ctx context.Context, user *models.User, classID string) {
	if s == nil || s.messenger == nil || user == nil || user.FCMToken == "" {
		return
	}
	if err := s.SubscribeToClasses(ctx, user.FCMToken, []string{classID}); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"userId":  user.UserID,
			"classId": classID,
		}).Warn("failed to subscribe to class topic")
	}
}

func preview(text string, max int) string {
	r := []rune(text)
	if len(r) <= max {
		return text
	}
	return string(r[:max-1]) + "…"
}
