package services

import (
	"testing"

	"chainwork_backend/internal/algorithms"
	"chainwork_backend/internal/models"
	"chainwork_backend/internal/repositories"
	"chainwork_backend/internal/services/dto"
	"chainwork_backend/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMessageRepo struct {
	rows []*models.Message
}

func (f *fakeMessageRepo) Create(m *models.Message) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	f.rows = append(f.rows, m)
	return nil
}

func (f *fakeMessageRepo) FindByID(id string) (*models.Message, error) {
	for _, m := range f.rows {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, repositories.ErrMessageNotFound
}

func (f *fakeMessageRepo) Delete(messageID string) error {
	for i, m := range f.rows {
		if m.ID == messageID {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return repositories.ErrMessageNotFound
}

func (f *fakeMessageRepo) FindByConversation(conversationID string, page, limit int) ([]models.Message, int64, error) {
	var out []models.Message
	for _, m := range f.rows {
		if m.ConversationID == conversationID {
			out = append(out, *m)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeMessageRepo) FindConversations(userID string) ([]repositories.ConversationSummary, error) {
	return nil, nil
}

func (f *fakeMessageRepo) MarkConversationRead(conversationID, readerID string) (int64, error) {
	var n int64
	for _, m := range f.rows {
		if m.ConversationID == conversationID && m.ReceiverID == readerID && !m.Read {
			m.Read = true
			n++
		}
	}
	return n, nil
}

func (f *fakeMessageRepo) CountUnread(userID string) (int64, error) {
	var n int64
	for _, m := range f.rows {
		if m.ReceiverID == userID && !m.Read {
			n++
		}
	}
	return n, nil
}

func (f *fakeMessageRepo) CountUnreadInConversation(conversationID, readerID string) (int64, error) {
	var n int64
	for _, m := range f.rows {
		if m.ConversationID == conversationID && m.ReceiverID == readerID && !m.Read {
			n++
		}
	}
	return n, nil
}

func newMessageTestService(receiver *models.User) (MessageService, *fakeMessageRepo) {
	messageRepo := &fakeMessageRepo{}
	svc := NewMessageService(messageRepo, &stubUserRepo{user: receiver}, NewNotificationService(newFakeNotificationRepo()))
	return svc, messageRepo
}

func TestSendMessage_SelfRejected(t *testing.T) {
	userID := uuid.NewString()
	svc, repo := newMessageTestService(nil)

	_, err := svc.Send(userID, dto.SendMessageRequest{ReceiverID: userID, Content: "hi"})

	require.ErrorIs(t, err, apperrors.ErrMessageToSelf)
	assert.Empty(t, repo.rows)
}

func TestSendMessage_AssignsConversationID(t *testing.T) {
	receiver := &models.User{}
	receiver.ID = uuid.NewString()
	sender := uuid.NewString()
	svc, _ := newMessageTestService(receiver)

	msg, err := svc.Send(sender, dto.SendMessageRequest{ReceiverID: receiver.ID, Content: "hello"})

	require.NoError(t, err)
	assert.Equal(t, algorithms.ConversationID(receiver.ID, sender), msg.ConversationID)
}

func TestSendMessage_UnknownReceiver(t *testing.T) {
	svc, _ := newMessageTestService(nil)

	_, err := svc.Send(uuid.NewString(), dto.SendMessageRequest{ReceiverID: uuid.NewString(), Content: "hi"})
	require.Error(t, err)
}

func TestListConversation_MarksRead(t *testing.T) {
	receiver := &models.User{}
	receiver.ID = uuid.NewString()
	sender := uuid.NewString()
	svc, repo := newMessageTestService(receiver)

	_, err := svc.Send(sender, dto.SendMessageRequest{ReceiverID: receiver.ID, Content: "one"})
	require.NoError(t, err)
	_, err = svc.Send(sender, dto.SendMessageRequest{ReceiverID: receiver.ID, Content: "two"})
	require.NoError(t, err)

	unread, err := svc.UnreadCount(receiver.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread)

	messages, pagination, err := svc.ListConversation(receiver.ID, sender, 1, 20)
	require.NoError(t, err)
	assert.Len(t, messages, 2)
	assert.Equal(t, int64(2), pagination.Total)

	unread, err = svc.UnreadCount(receiver.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), unread)

	for _, m := range repo.rows {
		assert.True(t, m.Read)
	}
}

func TestDeleteMessage_SenderOnly(t *testing.T) {
	receiver := &models.User{}
	receiver.ID = uuid.NewString()
	sender := uuid.NewString()
	svc, _ := newMessageTestService(receiver)

	msg, err := svc.Send(sender, dto.SendMessageRequest{ReceiverID: receiver.ID, Content: "oops"})
	require.NoError(t, err)

	err = svc.Delete(receiver.ID, msg.ID)
	require.Error(t, err)

	require.NoError(t, svc.Delete(sender, msg.ID))
}
