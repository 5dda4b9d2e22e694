package dto

import (
	"time"

	"chainwork_backend/internal/models"
	"chainwork_backend/internal/repositories"
)

type SendMessageRequest struct {
	ReceiverID string `json:"receiverId" validate:"required,uuid"`
	Content    string `json:"content" validate:"required,min=1,max=5000"`
}

type MessageResponse struct {
	ID             string     `json:"id"`
	ConversationID string     `json:"conversationId"`
	SenderID       string     `json:"senderId"`
	ReceiverID     string     `json:"receiverId"`
	Content        string     `json:"content"`
	Read           bool       `json:"read"`
	ReadAt         *time.Time `json:"readAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

func NewMessageResponse(m *models.Message) *MessageResponse {
	return &MessageResponse{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		ReceiverID:     m.ReceiverID,
		Content:        m.Content,
		Read:           m.Read,
		ReadAt:         m.ReadAt,
		CreatedAt:      m.CreatedAt,
	}
}

type ConversationResponse struct {
	ConversationID string           `json:"conversationId"`
	OtherUserID    string           `json:"otherUserId"`
	LastMessage    *MessageResponse `json:"lastMessage,omitempty"`
	UnreadCount    int64            `json:"unreadCount"`
}

func NewConversationResponse(s repositories.ConversationSummary) *ConversationResponse {
	resp := &ConversationResponse{
		ConversationID: s.ConversationID,
		OtherUserID:    s.OtherUserID,
		UnreadCount:    s.UnreadCount,
	}
	if s.LastMessage != nil {
		resp.LastMessage = NewMessageResponse(s.LastMessage)
	}
	return resp
}
