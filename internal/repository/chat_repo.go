package repository

import (
	"context"
	"sort"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/ZigaLarissa/EduAssist/internal/models"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
)

func setChatID(c *models.Chat, id string) { c.ID = id }

func setMessageID(m *models.Message, id string) { m.ID = id }

// PairChatID returns the deterministic chat document ID for two users. The
// order of the arguments does not matter.
func PairChatID(userID, otherUserID string) string {
	ids := []string{userID, otherUserID}
	sort.Strings(ids)
	return strings.Join(ids, "_")
}

type ChatRepository struct {
	client *firestore.Client
}

func NewChatRepository(client *firestore.Client) *ChatRepository {
	return &ChatRepository{
		client: client,
	}
}

func (r *ChatRepository) chats() *firestore.CollectionRef {
	return r.client.Collection(chatsCollection)
}

// FindChat looks the chat up by pair ID first, then among the user's chats
// for documents created before pair IDs were used.
func (r *ChatRepository) FindChat(ctx context.Context, userID, otherUserID string) (*models.Chat, error) {
	chat, err := getDoc(ctx, r.chats().Doc(PairChatID(userID, otherUserID)), setChatID)
	if err == nil {
		return chat, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	iter := r.chats().Where("participants", "array-contains", userID).Documents(ctx)
	return findWithParticipant(iter, otherUserID)
}

// CreateOrGetChat runs the lookup and the creation in one transaction on the
// pair document, so concurrent calls for the same users converge on one chat.
func (r *ChatRepository) CreateOrGetChat(ctx context.Context, chat *models.Chat) (*models.Chat, bool, error) {
	if len(chat.Participants) != 2 {
		return nil, false, errors.New("a chat needs exactly two participants")
	}
	userID, otherUserID := chat.Participants[0], chat.Participants[1]
	ref := r.chats().Doc(PairChatID(userID, otherUserID))

	var (
		result  *models.Chat
		created bool
	)
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		result, created = nil, false

		doc, err := tx.Get(ref)
		if err == nil {
			result, err = decode(doc, setChatID)
			return err
		}
		if !isNotFound(err) {
			return err
		}

		legacy, err := findWithParticipant(
			tx.Documents(r.chats().Where("participants", "array-contains", userID)),
			otherUserID,
		)
		if err != nil {
			return err
		}
		if legacy != nil {
			result = legacy
			return nil
		}

		created = true
		return tx.Create(ref, chat)
	})
	if err != nil {
		return nil, false, errors.Wrap(err, "create or get chat")
	}

	if created {
		stored := *chat
		stored.ID = ref.ID
		result = &stored
	}
	return result, created, nil
}

func findWithParticipant(iter *firestore.DocumentIterator, userID string) (*models.Chat, error) {
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}

		chat, err := decode(doc, setChatID)
		if err != nil {
			continue
		}
		if chat.HasParticipant(userID) {
			return chat, nil
		}
	}
}

func (r *ChatRepository) GetChat(ctx context.Context, chatID string) (*models.Chat, error) {
	return getDoc(ctx, r.chats().Doc(chatID), setChatID)
}

func (r *ChatRepository) inboxQuery(userID string) firestore.Query {
	return r.chats().
		Where("participants", "array-contains", userID).
		OrderBy("lastMessageTime", firestore.Desc)
}

// ListChatsForUser lists the user's chats, most recently active first
func (r *ChatRepository) ListChatsForUser(ctx context.Context, userID string) ([]*models.Chat, error) {
	return readAll(r.inboxQuery(userID).Documents(ctx), setChatID)
}

// WatchChatsForUser calls fn with the user's inbox on every change
func (r *ChatRepository) WatchChatsForUser(ctx context.Context, userID string, fn func([]*models.Chat) error) error {
	return watch(ctx, r.inboxQuery(userID), setChatID, fn)
}

// AddMessage stores msg and updates the chat's last message fields in one batch
func (r *ChatRepository) AddMessage(ctx context.Context, chatID string, msg *models.Message) error {
	chatRef := r.chats().Doc(chatID)
	msgRef := chatRef.Collection(messagesCollection).NewDoc()

	batch := r.client.Batch()
	batch.Create(msgRef, msg)
	batch.Update(chatRef, []firestore.Update{
		{Path: "lastMessage", Value: msg.Text},
		{Path: "lastMessageTime", Value: firestore.ServerTimestamp},
		{Path: "lastMessageSenderId", Value: msg.SenderID},
	})

	results, err := batch.Commit(ctx)
	if err != nil {
		if isNotFound(err) {
			return ErrNotFound
		}
		return err
	}

	msg.ID = msgRef.ID
	if len(results) > 0 {
		msg.Timestamp = results[0].UpdateTime
	}
	return nil
}

func (r *ChatRepository) messagesQuery(chatID string) firestore.Query {
	return r.chats().Doc(chatID).Collection(messagesCollection).OrderBy("timestamp", firestore.Asc)
}

// ListMessages lists a chat's messages, oldest first
func (r *ChatRepository) ListMessages(ctx context.Context, chatID string) ([]*models.Message, error) {
	return readAll(r.messagesQuery(chatID).Documents(ctx), setMessageID)
}

// WatchMessages calls fn with the chat's messages on every change
func (r *ChatRepository) WatchMessages(ctx context.Context, chatID string, fn func([]*models.Message) error) error {
	return watch(ctx, r.messagesQuery(chatID), setMessageID, fn)
}
