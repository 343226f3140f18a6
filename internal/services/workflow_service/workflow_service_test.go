package services

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"photo_vitrine/internal/domain/models"
	"photo_vitrine/internal/metrics"
	"photo_vitrine/internal/storage"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fakeStore — коллекции в памяти с семантикой реального хранилища:
// каждый Load возвращает свежую копию снимка, Save замещает коллекцию
type fakeStore struct {
	galleries     []models.Gallery
	notifications []models.Notification

	failGallerySave      error
	failNotificationSave error
}

func (f *fakeStore) LoadGalleries(_ context.Context) ([]models.Gallery, error) {
	return append([]models.Gallery(nil), f.galleries...), nil
}

func (f *fakeStore) SaveGalleries(_ context.Context, galleries []models.Gallery) error {
	if f.failGallerySave != nil {
		return f.failGallerySave
	}
	f.galleries = append([]models.Gallery(nil), galleries...)
	return nil
}

func (f *fakeStore) LoadNotifications(_ context.Context) ([]models.Notification, error) {
	return append([]models.Notification(nil), f.notifications...), nil
}

func (f *fakeStore) SaveNotifications(_ context.Context, notifications []models.Notification) error {
	if f.failNotificationSave != nil {
		return f.failNotificationSave
	}
	f.notifications = append([]models.Notification(nil), notifications...)
	return nil
}

func (f *fakeStore) openRequests(galleryID uuid.UUID) []models.Notification {
	var open []models.Notification
	for _, n := range f.notifications {
		if n.IsOpenRequest(galleryID) {
			open = append(open, n)
		}
	}
	return open
}

func (f *fakeStore) byRecipient(recipientID uuid.UUID, types ...models.NotificationType) []models.Notification {
	var out []models.Notification
	for _, n := range f.notifications {
		for _, tp := range types {
			if n.RecipientID == recipientID && n.Type == tp {
				out = append(out, n)
			}
		}
	}
	return out
}

type fakeHomeCache struct {
	resets int
}

func (f *fakeHomeCache) Reset() { f.resets++ }

func draftGallery(submitter models.Actor) models.Gallery {
	return models.Gallery{
		ID:            uuid.New(),
		Name:          "Street",
		Description:   "Night walks",
		Images:        []string{"street/1.jpg", "street/2.jpg"},
		SubmitterID:   submitter.ID,
		SubmitterName: submitter.Name,
		SubmitterRole: submitter.Role,
		Status:        models.GalleryStatusDraft,
		CreatedAt:     time.Now().UTC(),
	}
}

var (
	photographer = models.Actor{ID: uuid.New(), Name: "Lena", Role: models.RoleSubmitter}
	admin        = models.Actor{ID: uuid.New(), Name: "Admin", Role: models.RoleStaff}
)

func newTestService(store CollectionStore, home HomepageCache) *WorkflowService {
	return NewWorkflowService(slog.Default(), store, home)
}

func TestWorkflowService_SubmitForReview(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a staff inbox request", func(t *testing.T) {
		g := draftGallery(photographer)
		store := &fakeStore{galleries: []models.Gallery{g}}
		svc := newTestService(store, nil)

		got, err := svc.SubmitForReview(ctx, g.ID, photographer)
		require.NoError(t, err)

		assert.Equal(t, models.GalleryStatusPending, got.Status)
		require.NotNil(t, got.RequestedAt)
		assert.True(t, got.IsNotified)

		open := store.openRequests(g.ID)
		require.Len(t, open, 1)
		assert.Equal(t, models.StaffInboxID, open[0].RecipientID)
		assert.Equal(t, g.ID, open[0].RelatedID)
		assert.True(t, open[0].ActionRequired)
		assert.False(t, open[0].Read)
		assert.Contains(t, open[0].Message, g.Name)
	})

	t.Run("second submit does not duplicate the request", func(t *testing.T) {
		g := draftGallery(photographer)
		store := &fakeStore{galleries: []models.Gallery{g}}
		svc := newTestService(store, nil)

		_, err := svc.SubmitForReview(ctx, g.ID, photographer)
		require.NoError(t, err)

		got, err := svc.SubmitForReview(ctx, g.ID, photographer)
		require.NoError(t, err)

		assert.Equal(t, models.GalleryStatusPending, got.Status)
		assert.Len(t, store.openRequests(g.ID), 1)
		assert.Len(t, store.notifications, 1)
	})

	t.Run("unknown gallery", func(t *testing.T) {
		store := &fakeStore{}
		svc := newTestService(store, nil)

		_, err := svc.SubmitForReview(ctx, uuid.New(), photographer)
		assert.ErrorIs(t, err, storage.ErrGalleryNotFound)
	})

	t.Run("approved gallery cannot be resubmitted", func(t *testing.T) {
		g := draftGallery(photographer)
		g.Status = models.GalleryStatusApproved
		store := &fakeStore{galleries: []models.Gallery{g}}
		svc := newTestService(store, nil)

		_, err := svc.SubmitForReview(ctx, g.ID, photographer)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Empty(t, store.notifications)
	})
}

func TestWorkflowService_Moderate(t *testing.T) {
	ctx := context.Background()

	submitPending := func(t *testing.T, store *fakeStore, g models.Gallery) {
		t.Helper()
		svc := newTestService(store, nil)
		_, err := svc.SubmitForReview(ctx, g.ID, photographer)
		require.NoError(t, err)
	}

	t.Run("approve resolves the request and notifies the submitter", func(t *testing.T) {
		g := draftGallery(photographer)
		store := &fakeStore{galleries: []models.Gallery{g}}
		submitPending(t, store, g)

		home := &fakeHomeCache{}
		svc := newTestService(store, home)

		got, err := svc.Moderate(ctx, g.ID, DecisionApprove, admin)
		require.NoError(t, err)

		assert.Equal(t, models.GalleryStatusApproved, got.Status)
		require.NotNil(t, got.ModeratedBy)
		assert.Equal(t, admin.ID, *got.ModeratedBy)
		assert.Equal(t, admin.Name, got.ModeratedByName)
		assert.False(t, got.ShowOnHome, "approve must not publish to the homepage")

		assert.Empty(t, store.openRequests(g.ID), "submission request must be resolved")
		for _, n := range store.notifications {
			if n.Type == models.NotifSubmissionRequest && n.RelatedID == g.ID {
				assert.False(t, n.ActionRequired)
				assert.True(t, n.Read)
			}
		}

		results := store.byRecipient(photographer.ID, models.NotifSubmissionApproved)
		require.Len(t, results, 1)
		assert.Equal(t, g.ID, results[0].RelatedID)
		assert.False(t, results[0].ActionRequired)
		assert.Contains(t, results[0].Message, g.Name)

		assert.Equal(t, 1, home.resets)
	})

	t.Run("reject forces the gallery off the homepage", func(t *testing.T) {
		g := draftGallery(photographer)
		store := &fakeStore{galleries: []models.Gallery{g}}
		submitPending(t, store, g)

		svc := newTestService(store, nil)

		_, err := svc.Moderate(ctx, g.ID, DecisionApprove, admin)
		require.NoError(t, err)

		_, err = svc.SetHomepageVisibility(ctx, g.ID, true, admin)
		require.NoError(t, err)

		got, err := svc.Moderate(ctx, g.ID, DecisionReject, admin)
		require.NoError(t, err)

		assert.Equal(t, models.GalleryStatusRejected, got.Status)
		assert.False(t, got.ShowOnHome)

		rejected := store.byRecipient(photographer.ID, models.NotifSubmissionRejected)
		require.Len(t, rejected, 1)
		assert.Contains(t, rejected[0].Message, g.Name)
	})

	t.Run("moderation works without an open request", func(t *testing.T) {
		g := draftGallery(photographer)
		g.Status = models.GalleryStatusPending
		store := &fakeStore{galleries: []models.Gallery{g}}
		svc := newTestService(store, nil)

		got, err := svc.Moderate(ctx, g.ID, DecisionReject, admin)
		require.NoError(t, err)

		assert.Equal(t, models.GalleryStatusRejected, got.Status)
		require.Len(t, store.byRecipient(photographer.ID, models.NotifSubmissionRejected), 1)
	})

	t.Run("staff authored gallery does not notify staff", func(t *testing.T) {
		g := draftGallery(admin)
		g.Status = models.GalleryStatusPending
		store := &fakeStore{galleries: []models.Gallery{g}}
		svc := newTestService(store, nil)

		_, err := svc.Moderate(ctx, g.ID, DecisionApprove, admin)
		require.NoError(t, err)

		assert.Empty(t, store.byRecipient(admin.ID, models.NotifSubmissionApproved))
	})

	t.Run("approve draft is refused", func(t *testing.T) {
		g := draftGallery(photographer)
		store := &fakeStore{galleries: []models.Gallery{g}}
		svc := newTestService(store, nil)

		_, err := svc.Moderate(ctx, g.ID, DecisionApprove, admin)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Empty(t, store.notifications)
	})

	t.Run("unknown gallery", func(t *testing.T) {
		svc := newTestService(&fakeStore{}, nil)

		_, err := svc.Moderate(ctx, uuid.New(), DecisionApprove, admin)
		assert.ErrorIs(t, err, storage.ErrGalleryNotFound)
	})
}

func TestWorkflowService_SetHomepageVisibility(t *testing.T) {
	ctx := context.Background()

	t.Run("approved gallery can be shown and hidden", func(t *testing.T) {
		g := draftGallery(photographer)
		g.Status = models.GalleryStatusApproved
		store := &fakeStore{galleries: []models.Gallery{g}}
		home := &fakeHomeCache{}
		svc := newTestService(store, home)

		got, err := svc.SetHomepageVisibility(ctx, g.ID, true, admin)
		require.NoError(t, err)
		assert.True(t, got.ShowOnHome)

		got, err = svc.SetHomepageVisibility(ctx, g.ID, false, admin)
		require.NoError(t, err)
		assert.False(t, got.ShowOnHome)

		assert.Equal(t, 2, home.resets)
	})

	t.Run("pending gallery is refused", func(t *testing.T) {
		g := draftGallery(photographer)
		g.Status = models.GalleryStatusPending
		store := &fakeStore{galleries: []models.Gallery{g}}
		svc := newTestService(store, nil)

		_, err := svc.SetHomepageVisibility(ctx, g.ID, true, admin)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.False(t, store.galleries[0].ShowOnHome)
	})
}

func TestWorkflowService_AcknowledgeQueue(t *testing.T) {
	ctx := context.Background()

	pending := draftGallery(photographer)
	pending.Status = models.GalleryStatusPending
	pending.IsNotified = true

	stale := draftGallery(photographer)
	stale.Status = models.GalleryStatusPending
	stale.IsNotified = true

	draft := draftGallery(photographer)
	draft.IsNotified = true // черновик не участвует в очереди

	store := &fakeStore{galleries: []models.Gallery{pending, stale, draft}}
	svc := newTestService(store, nil)

	count, err := svc.AcknowledgeQueue(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	for _, g := range store.galleries {
		if g.Status == models.GalleryStatusPending {
			assert.False(t, g.IsNotified, "acknowledged pending gallery must not stay flagged")
		}
	}
	assert.True(t, store.galleries[2].IsNotified, "draft galleries are outside the queue")

	count, err = svc.AcknowledgeQueue(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, 0, count, "second acknowledgement must be a no-op")
}

func TestWorkflowService_DeleteGallery(t *testing.T) {
	ctx := context.Background()

	t.Run("delete resolves the open request", func(t *testing.T) {
		g := draftGallery(photographer)
		store := &fakeStore{galleries: []models.Gallery{g}}
		svc := newTestService(store, nil)

		_, err := svc.SubmitForReview(ctx, g.ID, photographer)
		require.NoError(t, err)
		require.Len(t, store.openRequests(g.ID), 1)

		err = svc.DeleteGallery(ctx, g.ID, photographer)
		require.NoError(t, err)

		assert.Empty(t, store.galleries)
		assert.Empty(t, store.openRequests(g.ID), "orphaned open requests must be resolved")
		require.Len(t, store.notifications, 1)
		assert.True(t, store.notifications[0].Read)
	})

	t.Run("unknown gallery", func(t *testing.T) {
		svc := newTestService(&fakeStore{}, nil)

		err := svc.DeleteGallery(ctx, uuid.New(), admin)
		assert.ErrorIs(t, err, storage.ErrGalleryNotFound)
	})
}

func TestWorkflowService_EmissionCounting(t *testing.T) {
	ctx := context.Background()

	requests := func() float64 {
		return testutil.ToFloat64(
			metrics.NotificationsEmittedTotal.WithLabelValues(string(models.NotifSubmissionRequest)),
		)
	}

	t.Run("failed notification write is not counted", func(t *testing.T) {
		g := draftGallery(photographer)
		store := &fakeStore{
			galleries:            []models.Gallery{g},
			failNotificationSave: storage.ErrStoreUnavailable,
		}
		svc := newTestService(store, nil)

		before := requests()
		_, err := svc.SubmitForReview(ctx, g.ID, photographer)
		require.ErrorIs(t, err, storage.ErrStoreUnavailable)
		assert.Equal(t, before, requests())
	})

	t.Run("successful submit counts one request", func(t *testing.T) {
		g := draftGallery(photographer)
		store := &fakeStore{galleries: []models.Gallery{g}}
		svc := newTestService(store, nil)

		before := requests()
		_, err := svc.SubmitForReview(ctx, g.ID, photographer)
		require.NoError(t, err)
		assert.Equal(t, before+1, requests())
	})

	t.Run("idempotent resubmit does not count", func(t *testing.T) {
		g := draftGallery(photographer)
		store := &fakeStore{galleries: []models.Gallery{g}}
		svc := newTestService(store, nil)

		_, err := svc.SubmitForReview(ctx, g.ID, photographer)
		require.NoError(t, err)

		before := requests()
		_, err = svc.SubmitForReview(ctx, g.ID, photographer)
		require.NoError(t, err)
		assert.Equal(t, before, requests())
	})
}

type MockCollectionStore struct {
	mock.Mock
}

func (m *MockCollectionStore) LoadGalleries(ctx context.Context) ([]models.Gallery, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Gallery), args.Error(1)
}

func (m *MockCollectionStore) SaveGalleries(ctx context.Context, galleries []models.Gallery) error {
	args := m.Called(ctx, galleries)
	return args.Error(0)
}

func (m *MockCollectionStore) LoadNotifications(ctx context.Context) ([]models.Notification, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *MockCollectionStore) SaveNotifications(ctx context.Context, notifications []models.Notification) error {
	args := m.Called(ctx, notifications)
	return args.Error(0)
}

func TestWorkflowService_WriteOrder(t *testing.T) {
	ctx := context.Background()

	g := draftGallery(photographer)

	t.Run("galleries are written before notifications", func(t *testing.T) {
		mockStore := new(MockCollectionStore)
		var order []string

		mockStore.On("LoadGalleries", ctx).Return([]models.Gallery{g}, nil).Once()
		mockStore.On("LoadNotifications", ctx).Return([]models.Notification{}, nil).Once()
		mockStore.On("SaveGalleries", ctx, mock.Anything).
			Run(func(mock.Arguments) { order = append(order, "galleries") }).
			Return(nil).Once()
		mockStore.On("SaveNotifications", ctx, mock.Anything).
			Run(func(mock.Arguments) { order = append(order, "notifications") }).
			Return(nil).Once()

		svc := newTestService(mockStore, nil)

		_, err := svc.SubmitForReview(ctx, g.ID, photographer)
		require.NoError(t, err)

		assert.Equal(t, []string{"galleries", "notifications"}, order)
		mockStore.AssertExpectations(t)
	})

	t.Run("store failure surfaces without retry", func(t *testing.T) {
		mockStore := new(MockCollectionStore)

		mockStore.On("LoadGalleries", ctx).Return([]models.Gallery{g}, nil).Once()
		mockStore.On("LoadNotifications", ctx).Return([]models.Notification{}, nil).Once()
		mockStore.On("SaveGalleries", ctx, mock.Anything).Return(nil).Once()
		mockStore.On("SaveNotifications", ctx, mock.Anything).
			Return(storage.ErrStoreUnavailable).Once()

		svc := newTestService(mockStore, nil)

		_, err := svc.SubmitForReview(ctx, g.ID, photographer)
		assert.ErrorIs(t, err, storage.ErrStoreUnavailable)
		mockStore.AssertExpectations(t)
	})

	t.Run("load failure aborts before any write", func(t *testing.T) {
		mockStore := new(MockCollectionStore)

		mockStore.On("LoadGalleries", ctx).
			Return([]models.Gallery(nil), errors.New("connection refused")).Once()

		svc := newTestService(mockStore, nil)

		_, err := svc.SubmitForReview(ctx, g.ID, photographer)
		assert.Error(t, err)
		mockStore.AssertNotCalled(t, "SaveGalleries", mock.Anything, mock.Anything)
		mockStore.AssertExpectations(t)
	})
}
