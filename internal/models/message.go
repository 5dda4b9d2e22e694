package models

import "time"

// Message is a direct message between two users. ConversationID is a pure
// function of the unordered {sender, receiver} pair (see
// algorithms.ConversationID), so all messages between a pair share one key
// regardless of direction.
type Message struct {
	BaseModel
	ConversationID string `gorm:"not null;index"`
	SenderID       string `gorm:"not null;index"`
	ReceiverID     string `gorm:"not null;index"`
	Content        string `gorm:"type:text;not null"`
	Read           bool   `gorm:"default:false"`
	ReadAt         *time.Time

	Sender   *User `gorm:"foreignKey:SenderID"`
	Receiver *User `gorm:"foreignKey:ReceiverID"`
}
