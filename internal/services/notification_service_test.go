package services

import (
	"errors"
	"sync"
	"testing"
	"time"

	"chainwork_backend/internal/models"
	"chainwork_backend/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotificationRepo struct {
	mu      sync.Mutex
	rows    []*models.Notification
	failFor map[string]error // recipientID -> forced error
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{failFor: map[string]error{}}
}

func (f *fakeNotificationRepo) Create(n *models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failFor[n.RecipientID]; ok {
		return err
	}
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	f.rows = append(f.rows, n)
	return nil
}

func (f *fakeNotificationRepo) FindByID(id string) (*models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.rows {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, repositories.ErrNotificationNotFound
}

func (f *fakeNotificationRepo) FindForRecipient(recipientID string, criteria repositories.NotificationCriteria) ([]models.Notification, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Notification
	for _, n := range f.rows {
		if n.RecipientID != recipientID {
			continue
		}
		if criteria.UnreadOnly && n.IsRead {
			continue
		}
		out = append(out, *n)
	}
	return out, int64(len(out)), nil
}

func (f *fakeNotificationRepo) MarkAsRead(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.rows {
		if n.ID == id {
			n.IsRead = true
			return nil
		}
	}
	return repositories.ErrNotificationNotFound
}

func (f *fakeNotificationRepo) MarkAllAsRead(recipientID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.rows {
		if n.RecipientID == recipientID {
			n.IsRead = true
		}
	}
	return nil
}

func (f *fakeNotificationRepo) Delete(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, n := range f.rows {
		if n.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotificationNotFound
}

func (f *fakeNotificationRepo) CountUnread(recipientID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, n := range f.rows {
		if n.RecipientID == recipientID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) recipients() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.rows))
	for _, n := range f.rows {
		out = append(out, n.RecipientID)
	}
	return out
}

func TestNotify_SelfSuppressed(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := NewNotificationService(repo)

	userID := uuid.NewString()
	n, err := svc.Notify(userID, userID, models.NotificationTypePostLiked, NotificationSubject{})

	require.NoError(t, err)
	assert.Nil(t, n)
	assert.Empty(t, repo.recipients())
}

func TestNotify_UnknownTypeRejected(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := NewNotificationService(repo)

	_, err := svc.Notify(uuid.NewString(), uuid.NewString(), "mystery_event", NotificationSubject{})

	require.Error(t, err)
	assert.Empty(t, repo.recipients())
}

func TestNotify_CreatesRow(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := NewNotificationService(repo)

	recipient := uuid.NewString()
	sender := uuid.NewString()
	n, err := svc.Notify(recipient, sender, models.NotificationTypeNewMessage, NotificationSubject{
		Data: map[string]interface{}{"message_preview": "hello"},
	})

	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, recipient, n.RecipientID)
	assert.Equal(t, sender, n.SenderID)
	assert.NotEmpty(t, n.Data)
}

func TestNotifyJobPosted_FanOutIsolation(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := NewNotificationService(repo)

	poster := uuid.NewString()
	good1 := uuid.NewString()
	bad := uuid.NewString()
	good2 := uuid.NewString()
	repo.failFor[bad] = errors.New("store unavailable")

	job := &models.Job{Title: "Go Engineer", Company: "ChainWork", PostedByID: poster}
	job.ID = uuid.NewString()

	// The failing recipient must not prevent delivery to the others, and
	// the poster must not notify themselves.
	svc.NotifyJobPosted(job, []string{good1, bad, poster, good2})

	assert.Eventually(t, func() bool {
		got := repo.recipients()
		return len(got) == 2
	}, time.Second, 10*time.Millisecond)

	got := repo.recipients()
	assert.ElementsMatch(t, []string{good1, good2}, got)
}

func TestUnreadCount_Recomputed(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := NewNotificationService(repo)

	recipient := uuid.NewString()
	sender := uuid.NewString()
	var ids []string
	for i := 0; i < 3; i++ {
		n, err := svc.Notify(recipient, sender, models.NotificationTypePostLiked, NotificationSubject{})
		require.NoError(t, err)
		ids = append(ids, n.ID)
	}

	count, err := svc.UnreadCount(recipient)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	require.NoError(t, svc.MarkRead(recipient, ids[0]))
	// Marking the same notification twice stays idempotent.
	require.NoError(t, svc.MarkRead(recipient, ids[0]))

	count, err = svc.UnreadCount(recipient)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, svc.MarkAllRead(recipient))
	count, err = svc.UnreadCount(recipient)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestMarkRead_OtherUsersNotificationHidden(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := NewNotificationService(repo)

	recipient := uuid.NewString()
	n, err := svc.Notify(recipient, uuid.NewString(), models.NotificationTypePostLiked, NotificationSubject{})
	require.NoError(t, err)

	err = svc.MarkRead(uuid.NewString(), n.ID)
	require.Error(t, err)
}
