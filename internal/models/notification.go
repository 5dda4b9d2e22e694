package models

import (
	"time"

	"gorm.io/datatypes"
)

// Notification is never created when recipient == sender; the service
// suppresses self-notifications before the write.
type Notification struct {
	BaseModel
	RecipientID string           `gorm:"not null;index"`
	SenderID    string           `gorm:"not null"`
	Type        NotificationType `gorm:"type:varchar(40);not null"`
	PostID      *string          `gorm:"index"`
	JobID       *string          `gorm:"index"`
	Data        datatypes.JSON   `gorm:"type:jsonb"` // {"message_preview": "...", ...}
	IsRead      bool             `gorm:"default:false"`
	ReadAt      *time.Time

	Sender *User `gorm:"foreignKey:SenderID"`
}
