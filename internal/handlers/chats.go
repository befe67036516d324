package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/ZigaLarissa/EduAssist/internal/models"
	"github.com/ZigaLarissa/EduAssist/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ChatManager is what ChatHandler needs from the chat service
type ChatManager interface {
	CreateOrGetChat(ctx context.Context, userID, targetUserID string) (*models.Chat, error)
	ListChats(ctx context.Context, userID string) ([]*models.Chat, error)
	WatchChats(ctx context.Context, userID string, fn func([]*models.Chat) error) error
	Messages(ctx context.Context, userID, chatID string, page, limit int) (*models.MessagesResponse, error)
	WatchMessages(ctx context.Context, userID, chatID string, fn func([]*models.Message) error) error
	SendMessage(ctx context.Context, userID, chatID, text string) (*models.Message, error)
	PossibleChatUsers(ctx context.Context, userID, userType, query string) ([]*models.ChatUser, error)
}

type ChatHandler struct {
	chats     ChatManager
	keepAlive time.Duration
	log       *logrus.Logger
}

func NewChatHandler(chats ChatManager, keepAlive time.Duration, log *logrus.Logger) *ChatHandler {
	return &ChatHandler{
		chats:     chats,
		keepAlive: keepAlive,
		log:       log,
	}
}

// GetChatUsers returns the users the caller can chat with
func (h *ChatHandler) GetChatUsers(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	users, err := h.chats.PossibleChatUsers(c.Request.Context(), userID, c.Query("role"), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// GetChats returns the caller's inbox
func (h *ChatHandler) GetChats(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	chats, err := h.chats.ListChats(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"chats": chats})
}

// CreateChat opens the chat with the target user, reusing an existing one
func (h *ChatHandler) CreateChat(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req models.CreateChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	chat, err := h.chats.CreateOrGetChat(c.Request.Context(), userID, req.TargetUserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"chatId": chat.ID, "chat": chat})
}

// GetMessages returns a page of a chat's history
func (h *ChatHandler) GetMessages(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", services.DefaultMessagesLimit)
	if limit > services.MaxMessagesLimit {
		limit = services.MaxMessagesLimit
	}

	resp, err := h.chats.Messages(c.Request.Context(), userID, c.Param("chatId"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req models.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.chats.SendMessage(c.Request.Context(), userID, c.Param("chatId"), req.Text)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": msg})
}

// StreamChats sends the caller's inbox as server-sent "chats" events
func (h *ChatHandler) StreamChats(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	streamSnapshots(c, h.log, "chats", h.keepAlive, func(ctx context.Context, fn func([]*models.Chat) error) error {
		return h.chats.WatchChats(ctx, userID, fn)
	})
}

// StreamMessages sends a chat's messages as server-sent "messages" events
func (h *ChatHandler) StreamMessages(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	chatID := c.Param("chatId")

	streamSnapshots(c, h.log, "messages", h.keepAlive, func(ctx context.Context, fn func([]*models.Message) error) error {
		return h.chats.WatchMessages(ctx, userID, chatID, fn)
	})
}

// streamSnapshots runs watch and writes each snapshot as one SSE event until
// the client goes away. Errors before the first snapshot get a regular error
// response; later listener errors end the stream with an empty list.
func streamSnapshots[T any](c *gin.Context, log *logrus.Logger, event string, keepAlive time.Duration, watch func(context.Context, func([]T) error) error) {
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	updates := make(chan []T)
	errc := make(chan error, 1)
	go func() {
		errc <- watch(ctx, func(items []T) error {
			select {
			case updates <- items:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}()

	var first []T
	select {
	case first = <-updates:
	case err := <-errc:
		if err != nil {
			respondError(c, err)
			return
		}
		first = []T{}
	case <-ctx.Done():
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	send := func(name string, data interface{}) {
		c.SSEvent(name, data)
		c.Writer.Flush()
	}
	send(event, first)

	if keepAlive <= 0 {
		keepAlive = 30 * time.Second
	}
	ticker := time.NewTicker(keepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case items := <-updates:
			send(event, items)
		case err := <-errc:
			if err != nil {
				log.WithError(err).WithField("event", event).Warn("snapshot listener failed")
				send(event, []T{})
			}
			return
		case <-ticker.C:
			send("ping", time.Now().Unix())
		}
	}
}
