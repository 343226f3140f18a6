package services

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"photo_vitrine/internal/domain/models"
	"photo_vitrine/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) ListByRecipient(ctx context.Context, recipientID uuid.UUID, filter models.NotificationFilter) ([]models.Notification, error) {
	args := m.Called(ctx, recipientID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *MockNotificationRepo) CountUnread(ctx context.Context, recipientID uuid.UUID) (int, error) {
	args := m.Called(ctx, recipientID)
	return args.Int(0), args.Error(1)
}

func (m *MockNotificationRepo) MarkRead(ctx context.Context, notificationID uuid.UUID) error {
	args := m.Called(ctx, notificationID)
	return args.Error(0)
}

func (m *MockNotificationRepo) MarkAllRead(ctx context.Context, recipientID uuid.UUID) error {
	args := m.Called(ctx, recipientID)
	return args.Error(0)
}

func (m *MockNotificationRepo) Resolve(ctx context.Context, notificationID uuid.UUID) (models.Notification, error) {
	args := m.Called(ctx, notificationID)
	return args.Get(0).(models.Notification), args.Error(1)
}

func notification(recipientID uuid.UUID, typ models.NotificationType, read bool) models.Notification {
	return models.Notification{
		ID:             uuid.New(),
		Type:           typ,
		RecipientID:    recipientID,
		RelatedID:      uuid.New(),
		ActionRequired: typ == models.NotifSubmissionRequest,
		Read:           read,
		Title:          "Заявка на публикацию",
		CreatedAt:      time.Now().UTC(),
	}
}

func TestNotificationService_Feed(t *testing.T) {
	ctx := context.Background()
	recipient := uuid.New()

	t.Run("feed with unread counter", func(t *testing.T) {
		repo := new(MockNotificationRepo)
		svc := NewNotificationService(slog.Default(), repo)

		items := []models.Notification{
			notification(recipient, models.NotifSubmissionApproved, false),
			notification(recipient, models.NotifSubmissionRejected, true),
		}
		repo.On("ListByRecipient", ctx, recipient, models.NotificationFilter{}).Return(items, nil)
		repo.On("CountUnread", ctx, recipient).Return(1, nil)

		feed, err := svc.Feed(ctx, recipient, false)
		require.NoError(t, err)

		assert.Len(t, feed.Notifications, 2)
		assert.Equal(t, 1, feed.UnreadCount)
		assert.Equal(t, string(models.NotifSubmissionApproved), feed.Notifications[0].Type)
		repo.AssertExpectations(t)
	})

	t.Run("unread only passes the filter down", func(t *testing.T) {
		repo := new(MockNotificationRepo)
		svc := NewNotificationService(slog.Default(), repo)

		repo.On("ListByRecipient", ctx, recipient, models.NotificationFilter{UnreadOnly: true}).
			Return([]models.Notification{}, nil)
		repo.On("CountUnread", ctx, recipient).Return(0, nil)

		feed, err := svc.Feed(ctx, recipient, true)
		require.NoError(t, err)
		assert.Empty(t, feed.Notifications)
		repo.AssertExpectations(t)
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := new(MockNotificationRepo)
		svc := NewNotificationService(slog.Default(), repo)

		repo.On("ListByRecipient", ctx, recipient, models.NotificationFilter{}).
			Return(nil, errors.New("connection reset"))

		_, err := svc.Feed(ctx, recipient, false)
		assert.Error(t, err)
	})
}

func TestNotificationService_StaffInbox(t *testing.T) {
	ctx := context.Background()

	repo := new(MockNotificationRepo)
	svc := NewNotificationService(slog.Default(), repo)

	open := notification(models.StaffInboxID, models.NotifSubmissionRequest, false)
	repo.On("ListByRecipient", ctx, models.StaffInboxID, models.NotificationFilter{ActionRequiredOnly: true}).
		Return([]models.Notification{open}, nil)

	inbox, err := svc.StaffInbox(ctx)
	require.NoError(t, err)

	require.Len(t, inbox, 1)
	assert.True(t, inbox[0].ActionRequired)
	assert.Equal(t, string(models.NotifSubmissionRequest), inbox[0].Type)
	repo.AssertExpectations(t)
}

func TestNotificationService_MarkRead(t *testing.T) {
	ctx := context.Background()

	t.Run("marks existing notification", func(t *testing.T) {
		repo := new(MockNotificationRepo)
		svc := NewNotificationService(slog.Default(), repo)

		id := uuid.New()
		repo.On("MarkRead", ctx, id).Return(nil)

		require.NoError(t, svc.MarkRead(ctx, id))
		repo.AssertExpectations(t)
	})

	t.Run("unknown notification", func(t *testing.T) {
		repo := new(MockNotificationRepo)
		svc := NewNotificationService(slog.Default(), repo)

		id := uuid.New()
		repo.On("MarkRead", ctx, id).Return(storage.ErrNotificationNotFound)

		err := svc.MarkRead(ctx, id)
		assert.ErrorIs(t, err, storage.ErrNotificationNotFound)
	})
}

func TestNotificationService_MarkResolved(t *testing.T) {
	ctx := context.Background()

	t.Run("closes the request and returns updated record", func(t *testing.T) {
		repo := new(MockNotificationRepo)
		svc := NewNotificationService(slog.Default(), repo)

		open := notification(models.StaffInboxID, models.NotifSubmissionRequest, false)
		resolved := open
		resolved.ActionRequired = false
		resolved.Read = true

		repo.On("Resolve", ctx, open.ID).Return(resolved, nil)

		out, err := svc.MarkResolved(ctx, open.ID)
		require.NoError(t, err)

		assert.False(t, out.ActionRequired)
		assert.True(t, out.Read)
		repo.AssertExpectations(t)
	})

	t.Run("unknown notification", func(t *testing.T) {
		repo := new(MockNotificationRepo)
		svc := NewNotificationService(slog.Default(), repo)

		id := uuid.New()
		repo.On("Resolve", ctx, id).Return(models.Notification{}, storage.ErrNotificationNotFound)

		_, err := svc.MarkResolved(ctx, id)
		assert.ErrorIs(t, err, storage.ErrNotificationNotFound)
	})
}

func TestNotificationService_MarkAllRead(t *testing.T) {
	ctx := context.Background()
	recipient := uuid.New()

	repo := new(MockNotificationRepo)
	svc := NewNotificationService(slog.Default(), repo)

	repo.On("MarkAllRead", ctx, recipient).Return(nil)

	require.NoError(t, svc.MarkAllRead(ctx, recipient))
	repo.AssertExpectations(t)
}

func TestNotificationService_UnreadCount(t *testing.T) {
	ctx := context.Background()
	recipient := uuid.New()

	repo := new(MockNotificationRepo)
	svc := NewNotificationService(slog.Default(), repo)

	repo.On("CountUnread", ctx, recipient).Return(3, nil)

	count, err := svc.UnreadCount(ctx, recipient)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
