package services

import (
	"context"
	"strings"
	"time"

	"github.com/ZigaLarissa/EduAssist/internal/metrics"
	"github.com/ZigaLarissa/EduAssist/internal/models"
	"github.com/ZigaLarissa/EduAssist/internal/repository"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	DefaultMessagesLimit = 50
	MaxMessagesLimit     = 100
)

type ChatService struct {
	users    repository.UserStore
	chats    repository.ChatStore
	notifier *NotificationService
	log      *logrus.Logger
	now      func() time.Time
}

func NewChatService(users repository.UserStore, chats repository.ChatStore, notifier *NotificationService, log *logrus.Logger) *ChatService {
	return &ChatService{
		users:    users,
		chats:    chats,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

// CreateOrGetChat returns the chat between userID and targetUserID, creating
// it when the two have never talked before
func (s *ChatService) CreateOrGetChat(ctx context.Context, userID, targetUserID string) (*models.Chat, error) {
	targetUserID = strings.TrimSpace(targetUserID)
	if targetUserID == "" {
		return nil, invalid("target user is required")
	}
	if targetUserID == userID {
		return nil, invalid("you cannot start a chat with yourself")
	}

	existing, err := s.chats.FindChat(ctx, userID, targetUserID)
	if err != nil {
		return nil, errors.Wrap(err, "find chat")
	}
	if existing != nil {
		return existing, nil
	}

	target, err := s.users.GetUserByID(ctx, targetUserID)
	if err != nil {
		return nil, errors.Wrap(err, "target user")
	}
	caller, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "user")
	}

	chat := &models.Chat{
		Participants:     []string{userID, targetUserID},
		ParticipantsInfo: []models.ParticipantInfo{participantInfo(caller), participantInfo(target)},
	}
	stored, created, err := s.chats.CreateOrGetChat(ctx, chat)
	if err != nil {
		return nil, err
	}

	if created {
		now := s.now()
		stored.CreatedAt = now
		stored.LastMessageTime = now
		metrics.ChatsCreated.Inc()
		s.log.WithFields(logrus.Fields{"chatId": stored.ID, "userId": userID}).Info("chat created")
	}
	return stored, nil
}

func participantInfo(u *models.User) models.ParticipantInfo {
	info := models.ParticipantInfo{
		ID:          u.UserID,
		DisplayName: u.DisplayName(),
	}
	if u.PhotoURL != "" {
		photo := u.PhotoURL
		info.PhotoURL = &photo
	}
	return info
}

// ListChats lists the user's chats, most recently active first
func (s *ChatService) ListChats(ctx context.Context, userID string) ([]*models.Chat, error) {
	return s.chats.ListChatsForUser(ctx, userID)
}

// WatchChats calls fn with the user's inbox until ctx is done
func (s *ChatService) WatchChats(ctx context.Context, userID string, fn func([]*models.Chat) error) error {
	return s.chats.WatchChatsForUser(ctx, userID, fn)
}

// chatFor loads a chat and checks that userID takes part in it
func (s *ChatService) chatFor(ctx context.Context, userID, chatID string) (*models.Chat, error) {
	chat, err := s.chats.GetChat(ctx, chatID)
	if err != nil {
		return nil, errors.Wrap(err, "chat")
	}
	if !chat.HasParticipant(userID) {
		return nil, errors.Wrap(ErrForbidden, "not a participant of this chat")
	}
	return chat, nil
}

// Messages returns one page of a chat's history in chronological order.
// Page 1 holds the latest limit messages, page 2 the ones before them.
func (s *ChatService) Messages(ctx context.Context, userID, chatID string, page, limit int) (*models.MessagesResponse, error) {
	if _, err := s.chatFor(ctx, userID, chatID); err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultMessagesLimit
	}
	if limit > MaxMessagesLimit {
		limit = MaxMessagesLimit
	}

	all, err := s.chats.ListMessages(ctx, chatID)
	if err != nil {
		return nil, err
	}

	total := len(all)
	end := total - (page-1)*limit
	if end <= 0 {
		return &models.MessagesResponse{Messages: []*models.Message{}, Total: total}, nil
	}
	start := end - limit
	if start < 0 {
		start = 0
	}

	return &models.MessagesResponse{
		Messages: all[start:end],
		Total:    total,
	}, nil
}

// WatchMessages calls fn with the chat's messages until ctx is done
func (s *ChatService) WatchMessages(ctx context.Context, userID, chatID string, fn func([]*models.Message) error) error {
	if _, err := s.chatFor(ctx, userID, chatID); err != nil {
		return err
	}
	return s.chats.WatchMessages(ctx, chatID, fn)
}

// SendMessage posts text to a chat and notifies the other participant
func (s *ChatService) SendMessage(ctx context.Context, userID, chatID, text string) (*models.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, invalid("message text cannot be empty")
	}

	chat, err := s.chatFor(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	sender, err := s.users.GetUserByID(ctx, userID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, errors.Wrap(err, "user")
	}

	msg := &models.Message{
		Text:       text,
		SenderID:   userID,
		SenderName: sender.DisplayName(),
	}
	if err := s.chats.AddMessage(ctx, chatID, msg); err != nil {
		return nil, errors.Wrap(err, "send message")
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = s.now()
	}
	metrics.MessagesSent.Inc()

	recipientID := chat.OtherParticipant(userID)
	recipient, err := s.users.GetUserByID(ctx, recipientID)
	if err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{"chatId": chatID, "userId": recipientID}).Warn("failed to load message recipient")
		return msg, nil
	}
	s.notifier.NotifyNewMessage(ctx, recipient, msg.SenderName, chatID, text)
	return msg, nil
}

// PossibleChatUsers lists the users the caller can start a chat with.
// userType is "teachers", "parents" or anything else for everyone; query
// filters display names case-insensitively.
func (s *ChatService) PossibleChatUsers(ctx context.Context, userID, userType, query string) ([]*models.ChatUser, error) {
	var role models.Role
	switch userType {
	case "teachers":
		role = models.RoleTeacher
	case "parents":
		role = models.RoleParent
	}

	users, err := s.users.ListUsers(ctx, role)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	result := []*models.ChatUser{}
	for _, u := range users {
		if u.UserID == userID {
			continue
		}
		name := u.DisplayName()
		if query != "" && !strings.Contains(strings.ToLower(name), query) {
			continue
		}
		result = append(result, &models.ChatUser{
			ID:          u.UserID,
			DisplayName: name,
			PhotoURL:    u.PhotoURL,
			Role:        u.Role,
		})
	}
	return result, nil
}
