package models

import "time"

// ParticipantInfo is the denormalized display info of a chat participant
type ParticipantInfo struct {
	ID          string  `firestore:"id" json:"id"`
	DisplayName string  `firestore:"displayName" json:"displayName"`
	PhotoURL    *string `firestore:"photoURL" json:"photoURL"`
}

// Chat represents a one-on-one conversation
type Chat struct {
	ID                  string            `firestore:"-" json:"id"`
	Participants        []string          `firestore:"participants" json:"participants"`
	ParticipantsInfo    []ParticipantInfo `firestore:"participantsInfo" json:"participantsInfo"`
	CreatedAt           time.Time         `firestore:"createdAt,serverTimestamp" json:"createdAt"`
	LastMessage         string            `firestore:"lastMessage" json:"lastMessage"`
	LastMessageTime     time.Time         `firestore:"lastMessageTime,serverTimestamp" json:"lastMessageTime"`
	LastMessageSenderID string            `firestore:"lastMessageSenderId" json:"lastMessageSenderId"`
}

// HasParticipant reports whether userID takes part in the chat
func (c *Chat) HasParticipant(userID string) bool {
	for _, id := range c.Participants {
		if id == userID {
			return true
		}
	}
	return false
}

// OtherParticipant returns the participant that is not userID
func (c *Chat) OtherParticipant(userID string) string {
	for _, id := range c.Participants {
		if id != userID {
			return id
		}
	}
	return ""
}

// Message is a single chat message
type Message struct {
	ID         string    `firestore:"-" json:"id"`
	Text       string    `firestore:"text" json:"text"`
	SenderID   string    `firestore:"senderId" json:"senderId"`
	SenderName string    `firestore:"senderName" json:"senderName"`
	Timestamp  time.Time `firestore:"timestamp,serverTimestamp" json:"timestamp"`
}

// CreateChatRequest represents the request body for opening a chat
type CreateChatRequest struct {
	TargetUserID string `json:"targetUserId" binding:"required"`
}

// SendMessageRequest represents the request body for sending a message
type SendMessageRequest struct {
	Text string `json:"text" binding:"required"`
}

// MessagesResponse represents a page of chat history
type MessagesResponse struct {
	Messages []*Message `json:"messages"`
	Total    int        `json:"total"`
}
