package services

import (
	"encoding/json"
	"errors"

	"chainwork_backend/internal/logger"
	"chainwork_backend/internal/models"
	"chainwork_backend/internal/repositories"
	"chainwork_backend/internal/services/dto"
	"chainwork_backend/pkg/apperrors"
)

// NotificationService creates and queries in-app notifications. All Notify*
// helpers are best effort from the caller's point of view: a failed
// notification is logged and swallowed, it never fails the action that
// triggered it.
type NotificationService interface {
	Notify(recipientID, senderID string, nType models.NotificationType, subject NotificationSubject) (*models.Notification, error)

	NotifyPostLiked(post *models.Post, likerID string)
	NotifyPostCommented(post *models.Post, commenterID, comment string)
	NotifyConnectionRequest(recipientID, requesterID string)
	NotifyConnectionAccepted(requesterID, accepterID string)
	NotifyProfileViewed(profileOwnerID, viewerID string)
	NotifyNewMessage(message *models.Message)
	NotifyApplicationReceived(job *models.Job, applicantID string)
	NotifyJobPosted(job *models.Job, connectionIDs []string)

	List(recipientID string, query dto.NotificationQuery) ([]dto.NotificationResponse, repositories.Pagination, error)
	MarkRead(recipientID, notificationID string) error
	MarkAllRead(recipientID string) error
	Delete(recipientID, notificationID string) error
	UnreadCount(recipientID string) (int64, error)
}

// NotificationSubject carries the optional references and payload attached
// to a notification.
type NotificationSubject struct {
	PostID *string
	JobID  *string
	Data   map[string]interface{}
}

type NotificationServiceImpl struct {
	notifRepo repositories.NotificationRepository
}

func NewNotificationService(notifRepo repositories.NotificationRepository) NotificationService {
	return &NotificationServiceImpl{notifRepo: notifRepo}
}

// Notify writes one notification. Self-notifications (recipient == sender)
// are suppressed and return (nil, nil); unknown types are rejected.
func (s *NotificationServiceImpl) Notify(recipientID, senderID string, nType models.NotificationType, subject NotificationSubject) (*models.Notification, error) {
	if recipientID == senderID {
		return nil, nil
	}
	if !models.ValidNotificationTypes[nType] {
		return nil, apperrors.NewBadRequestError("unknown notification type: " + string(nType))
	}

	notification := &models.Notification{
		RecipientID: recipientID,
		SenderID:    senderID,
		Type:        nType,
		PostID:      subject.PostID,
		JobID:       subject.JobID,
	}
	if len(subject.Data) > 0 {
		raw, err := json.Marshal(subject.Data)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		notification.Data = raw
	}

	if err := s.notifRepo.Create(notification); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return notification, nil
}

// notifyAsync fires a single notification without blocking the caller.
func (s *NotificationServiceImpl) notifyAsync(recipientID, senderID string, nType models.NotificationType, subject NotificationSubject) {
	go func() {
		if _, err := s.Notify(recipientID, senderID, nType, subject); err != nil {
			logger.WithError(err).Warn("notification delivery failed",
				"type", nType, "recipient", recipientID)
		}
	}()
}

func (s *NotificationServiceImpl) NotifyPostLiked(post *models.Post, likerID string) {
	s.notifyAsync(post.AuthorID, likerID, models.NotificationTypePostLiked, NotificationSubject{
		PostID: &post.ID,
	})
}

func (s *NotificationServiceImpl) NotifyPostCommented(post *models.Post, commenterID, comment string) {
	s.notifyAsync(post.AuthorID, commenterID, models.NotificationTypePostCommented, NotificationSubject{
		PostID: &post.ID,
		Data:   map[string]interface{}{"comment_preview": preview(comment, 120)},
	})
}

func (s *NotificationServiceImpl) NotifyConnectionRequest(recipientID, requesterID string) {
	s.notifyAsync(recipientID, requesterID, models.NotificationTypeConnectionRequest, NotificationSubject{})
}

func (s *NotificationServiceImpl) NotifyConnectionAccepted(requesterID, accepterID string) {
	s.notifyAsync(requesterID, accepterID, models.NotificationTypeConnectionAccepted, NotificationSubject{})
}

func (s *NotificationServiceImpl) NotifyProfileViewed(profileOwnerID, viewerID string) {
	s.notifyAsync(profileOwnerID, viewerID, models.NotificationTypeProfileViewed, NotificationSubject{})
}

func (s *NotificationServiceImpl) NotifyNewMessage(message *models.Message) {
	s.notifyAsync(message.ReceiverID, message.SenderID, models.NotificationTypeNewMessage, NotificationSubject{
		Data: map[string]interface{}{"message_preview": preview(message.Content, 120)},
	})
}

func (s *NotificationServiceImpl) NotifyApplicationReceived(job *models.Job, applicantID string) {
	s.notifyAsync(job.PostedByID, applicantID, models.NotificationTypeApplicationReceived, NotificationSubject{
		JobID: &job.ID,
		Data:  map[string]interface{}{"job_title": job.Title},
	})
}

// NotifyJobPosted fans out to every accepted connection of the poster.
// Each recipient gets its own goroutine; one failure never blocks the rest.
func (s *NotificationServiceImpl) NotifyJobPosted(job *models.Job, connectionIDs []string) {
	subject := NotificationSubject{
		JobID: &job.ID,
		Data:  map[string]interface{}{"job_title": job.Title, "company": job.Company},
	}
	for _, recipientID := range connectionIDs {
		s.notifyAsync(recipientID, job.PostedByID, models.NotificationTypeJobPosted, subject)
	}
}

func (s *NotificationServiceImpl) List(recipientID string, query dto.NotificationQuery) ([]dto.NotificationResponse, repositories.Pagination, error) {
	criteria := repositories.NotificationCriteria{
		UnreadOnly: query.UnreadOnly,
		Type:       models.NotificationType(query.Type),
		Page:       query.Page,
		PageSize:   query.Limit,
	}
	if criteria.Type != "" && !models.ValidNotificationTypes[criteria.Type] {
		return nil, repositories.Pagination{}, apperrors.NewBadRequestError("unknown notification type: " + query.Type)
	}

	notifications, total, err := s.notifRepo.FindForRecipient(recipientID, criteria)
	if err != nil {
		return nil, repositories.Pagination{}, apperrors.InternalError(err)
	}

	responses := make([]dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		responses = append(responses, *dto.NewNotificationResponse(&notifications[i]))
	}
	return responses, repositories.NewPagination(query.Page, query.Limit, total), nil
}

func (s *NotificationServiceImpl) MarkRead(recipientID, notificationID string) error {
	if err := s.ownedBy(recipientID, notificationID); err != nil {
		return err
	}
	if err := s.notifRepo.MarkAsRead(notificationID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *NotificationServiceImpl) MarkAllRead(recipientID string) error {
	if err := s.notifRepo.MarkAllAsRead(recipientID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *NotificationServiceImpl) Delete(recipientID, notificationID string) error {
	if err := s.ownedBy(recipientID, notificationID); err != nil {
		return err
	}
	if err := s.notifRepo.Delete(notificationID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *NotificationServiceImpl) UnreadCount(recipientID string) (int64, error) {
	count, err := s.notifRepo.CountUnread(recipientID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}

// ownedBy resolves a notification and hides other users' notifications
// behind the same not-found error.
func (s *NotificationServiceImpl) ownedBy(recipientID, notificationID string) error {
	notification, err := s.notifRepo.FindByID(notificationID)
	if errors.Is(err, repositories.ErrNotificationNotFound) {
		return apperrors.ErrNotFound(err)
	}
	if err != nil {
		return apperrors.InternalError(err)
	}
	if notification.RecipientID != recipientID {
		return apperrors.ErrNotFoundOrUnauthorized(repositories.ErrNotificationNotFound)
	}
	return nil
}

func preview(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}
