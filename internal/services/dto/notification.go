package dto

import (
	"encoding/json"
	"time"

	"chainwork_backend/internal/models"
)

type NotificationQuery struct {
	PageQuery
	UnreadOnly bool   `form:"unread_only"`
	Type       string `form:"type"`
}

type NotificationResponse struct {
	ID        string        `json:"id"`
	Type      string        `json:"type"`
	Sender    *UserResponse `json:"sender,omitempty"`
	PostID    *string       `json:"postId,omitempty"`
	JobID     *string       `json:"jobId,omitempty"`
	Data      interface{}   `json:"data,omitempty"`
	IsRead    bool          `json:"isRead"`
	ReadAt    *time.Time    `json:"readAt,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
}

func NewNotificationResponse(n *models.Notification) *NotificationResponse {
	resp := &NotificationResponse{
		ID:        n.ID,
		Type:      string(n.Type),
		PostID:    n.PostID,
		JobID:     n.JobID,
		IsRead:    n.IsRead,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
	if n.Sender != nil {
		resp.Sender = NewUserResponse(n.Sender, false)
	}
	if len(n.Data) > 0 {
		var data interface{}
		if err := json.Unmarshal(n.Data, &data); err == nil {
			resp.Data = data
		}
	}
	return resp
}
