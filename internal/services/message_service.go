package services

import (
	"errors"

	"chainwork_backend/internal/algorithms"
	"chainwork_backend/internal/models"
	"chainwork_backend/internal/repositories"
	"chainwork_backend/internal/services/dto"
	"chainwork_backend/pkg/apperrors"
)

type MessageService interface {
	Send(senderID string, req dto.SendMessageRequest) (*dto.MessageResponse, error)
	ListConversation(userID, otherID string, page, limit int) ([]dto.MessageResponse, repositories.Pagination, error)
	ListConversations(userID string) ([]dto.ConversationResponse, error)
	Delete(senderID, messageID string) error
	UnreadCount(userID string) (int64, error)
}

type MessageServiceImpl struct {
	messageRepo  repositories.MessageRepository
	userRepo     repositories.UserRepository
	notification NotificationService
}

func NewMessageService(messageRepo repositories.MessageRepository, userRepo repositories.UserRepository, notification NotificationService) MessageService {
	return &MessageServiceImpl{
		messageRepo:  messageRepo,
		userRepo:     userRepo,
		notification: notification,
	}
}

func (s *MessageServiceImpl) Send(senderID string, req dto.SendMessageRequest) (*dto.MessageResponse, error) {
	if senderID == req.ReceiverID {
		return nil, apperrors.ErrMessageToSelf
	}
	if _, err := s.userRepo.FindByID(req.ReceiverID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	message := &models.Message{
		ConversationID: algorithms.ConversationID(senderID, req.ReceiverID),
		SenderID:       senderID,
		ReceiverID:     req.ReceiverID,
		Content:        req.Content,
	}
	if err := s.messageRepo.Create(message); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.notification.NotifyNewMessage(message)
	return dto.NewMessageResponse(message), nil
}

// ListConversation returns the message history with another user, newest
// first, and marks the other side's messages as read.
func (s *MessageServiceImpl) ListConversation(userID, otherID string, page, limit int) ([]dto.MessageResponse, repositories.Pagination, error) {
	conversationID := algorithms.ConversationID(userID, otherID)

	if _, err := s.messageRepo.MarkConversationRead(conversationID, userID); err != nil {
		return nil, repositories.Pagination{}, apperrors.InternalError(err)
	}

	messages, total, err := s.messageRepo.FindByConversation(conversationID, page, limit)
	if err != nil {
		return nil, repositories.Pagination{}, apperrors.InternalError(err)
	}

	responses := make([]dto.MessageResponse, 0, len(messages))
	for i := range messages {
		responses = append(responses, *dto.NewMessageResponse(&messages[i]))
	}
	return responses, repositories.NewPagination(page, limit, total), nil
}

func (s *MessageServiceImpl) ListConversations(userID string) ([]dto.ConversationResponse, error) {
	summaries, err := s.messageRepo.FindConversations(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.ConversationResponse, 0, len(summaries))
	for _, summary := range summaries {
		responses = append(responses, *dto.NewConversationResponse(summary))
	}
	return responses, nil
}

// Delete removes a message. Only the sender can delete, receivers keep
// their copy of the thread intact from their point of view.
func (s *MessageServiceImpl) Delete(senderID, messageID string) error {
	message, err := s.messageRepo.FindByID(messageID)
	if errors.Is(err, repositories.ErrMessageNotFound) {
		return apperrors.ErrNotFound(err)
	}
	if err != nil {
		return apperrors.InternalError(err)
	}
	if message.SenderID != senderID {
		return apperrors.ErrNotFoundOrUnauthorized(repositories.ErrMessageNotFound)
	}

	if err := s.messageRepo.Delete(messageID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *MessageServiceImpl) UnreadCount(userID string) (int64, error) {
	count, err := s.messageRepo.CountUnread(userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}
