package repositories

import (
	"errors"
	"time"

	"chainwork_backend/internal/models"

	"gorm.io/gorm"
)

var ErrMessageNotFound = errors.New("message not found")

// ConversationSummary is one row of the conversation list: the other
// participant, the latest message, and the viewer's unread count.
type ConversationSummary struct {
	ConversationID string          `json:"conversation_id"`
	OtherUserID    string          `json:"other_user_id"`
	LastMessage    *models.Message `json:"last_message"`
	UnreadCount    int64           `json:"unread_count"`
}

type MessageRepository interface {
	Create(message *models.Message) error
	FindByID(id string) (*models.Message, error)
	Delete(messageID string) error

	FindByConversation(conversationID string, page, limit int) ([]models.Message, int64, error)
	FindConversations(userID string) ([]ConversationSummary, error)

	// Read state. MarkConversationRead flips every unread message addressed
	// to the reader in one statement (bulk mark-as-read on open).
	MarkConversationRead(conversationID, readerID string) (int64, error)
	CountUnread(userID string) (int64, error)
	CountUnreadInConversation(conversationID, readerID string) (int64, error)
}

type MessageRepositoryImpl struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &MessageRepositoryImpl{db: db}
}

func (r *MessageRepositoryImpl) Create(message *models.Message) error {
	return r.db.Create(message).Error
}

func (r *MessageRepositoryImpl) FindByID(id string) (*models.Message, error) {
	var message models.Message
	err := r.db.Where("id = ?", id).First(&message).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMessageNotFound
	}
	return &message, err
}

func (r *MessageRepositoryImpl) Delete(messageID string) error {
	result := r.db.Delete(&models.Message{}, "id = ?", messageID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMessageNotFound
	}
	return nil
}

func (r *MessageRepositoryImpl) FindByConversation(conversationID string, page, limit int) ([]models.Message, int64, error) {
	base := r.db.Model(&models.Message{}).Where("conversation_id = ?", conversationID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	p := NewPagination(page, limit, total)

	var messages []models.Message
	err := base.Order("created_at DESC").
		Offset(p.Offset()).Limit(p.Limit).
		Find(&messages).Error
	return messages, total, err
}

// FindConversations groups the user's messages by conversation id and
// returns one summary per conversation, newest first.
func (r *MessageRepositoryImpl) FindConversations(userID string) ([]ConversationSummary, error) {
	var conversationIDs []string
	err := r.db.Model(&models.Message{}).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Distinct("conversation_id").
		Pluck("conversation_id", &conversationIDs).Error
	if err != nil {
		return nil, err
	}

	summaries := make([]ConversationSummary, 0, len(conversationIDs))
	for _, convID := range conversationIDs {
		var last models.Message
		err := r.db.Where("conversation_id = ?", convID).
			Order("created_at DESC").First(&last).Error
		if err != nil {
			return nil, err
		}

		unread, err := r.CountUnreadInConversation(convID, userID)
		if err != nil {
			return nil, err
		}

		otherID := last.SenderID
		if otherID == userID {
			otherID = last.ReceiverID
		}

		summaries = append(summaries, ConversationSummary{
			ConversationID: convID,
			OtherUserID:    otherID,
			LastMessage:    &last,
			UnreadCount:    unread,
		})
	}

	// Newest conversation first.
	for i := 0; i < len(summaries); i++ {
		for j := i + 1; j < len(summaries); j++ {
			if summaries[j].LastMessage.CreatedAt.After(summaries[i].LastMessage.CreatedAt) {
				summaries[i], summaries[j] = summaries[j], summaries[i]
			}
		}
	}

	return summaries, nil
}

func (r *MessageRepositoryImpl) MarkConversationRead(conversationID, readerID string) (int64, error) {
	result := r.db.Model(&models.Message{}).
		Where("conversation_id = ? AND receiver_id = ? AND read = false", conversationID, readerID).
		Updates(map[string]interface{}{
			"read":    true,
			"read_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

func (r *MessageRepositoryImpl) CountUnread(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Message{}).
		Where("receiver_id = ? AND read = false", userID).
		Count(&count).Error
	return count, err
}

func (r *MessageRepositoryImpl) CountUnreadInConversation(conversationID, readerID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Message{}).
		Where("conversation_id = ? AND receiver_id = ? AND read = false", conversationID, readerID).
		Count(&count).Error
	return count, err
}
