package tests

import (
	"errors"
	"testing"

	"photo_vitrine/internal/domain/models"
	workflow "photo_vitrine/internal/services/workflow_service"
	"photo_vitrine/tests/suite"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPhotographer() models.Actor {
	return models.Actor{ID: uuid.New(), Name: "Irina Photo", Role: models.RoleSubmitter}
}

func testModerator() models.Actor {
	return models.Actor{ID: uuid.New(), Name: "Site Admin", Role: models.RoleStaff}
}

func TestGalleryModeration_ApproveHappyPath(t *testing.T) {
	ctx, st := suite.New(t)

	photographer := testPhotographer()
	moderator := testModerator()

	created, err := st.Workflow.CreateGallery(ctx, workflow.CreateGalleryInput{
		Name:        "Wedding season",
		Description: "Summer shoots",
		Images:      []string{"a.jpg", "b.jpg"},
	}, photographer)
	require.NoError(t, err)
	assert.Equal(t, models.GalleryStatusDraft, created.Status)

	notifications, err := st.Store.LoadNotifications(ctx)
	require.NoError(t, err)
	assert.Empty(t, notifications, "черновик не порождает уведомлений")

	submitted, err := st.Workflow.SubmitForReview(ctx, created.ID, photographer)
	require.NoError(t, err)
	assert.Equal(t, models.GalleryStatusPending, submitted.Status)
	assert.True(t, submitted.IsNotified)
	require.NotNil(t, submitted.RequestedAt)

	// Повторный submit идемпотентен: заявка в ящике не дублируется
	_, err = st.Workflow.SubmitForReview(ctx, created.ID, photographer)
	require.NoError(t, err)

	notifications, err = st.Store.LoadNotifications(ctx)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	request := notifications[0]
	assert.Equal(t, models.NotifSubmissionRequest, request.Type)
	assert.Equal(t, models.StaffInboxID, request.RecipientID)
	assert.Equal(t, created.ID, request.RelatedID)
	assert.True(t, request.ActionRequired)

	cleared, err := st.Workflow.AcknowledgeQueue(ctx, moderator)
	require.NoError(t, err)
	assert.Equal(t, 1, cleared)

	cleared, err = st.Workflow.AcknowledgeQueue(ctx, moderator)
	require.NoError(t, err)
	assert.Zero(t, cleared)

	approved, err := st.Workflow.Moderate(ctx, created.ID, workflow.DecisionApprove, moderator)
	require.NoError(t, err)
	assert.Equal(t, models.GalleryStatusApproved, approved.Status)
	assert.False(t, approved.ShowOnHome, "одобрение само по себе не выводит галерею на главную")
	require.NotNil(t, approved.ModeratedBy)
	assert.Equal(t, moderator.ID, *approved.ModeratedBy)

	notifications, err = st.Store.LoadNotifications(ctx)
	require.NoError(t, err)
	require.Len(t, notifications, 2)
	assert.False(t, notifications[0].ActionRequired, "заявка закрыта решением модератора")
	assert.True(t, notifications[0].Read)
	assert.Equal(t, models.NotifSubmissionApproved, notifications[1].Type)
	assert.Equal(t, photographer.ID, notifications[1].RecipientID)

	visible, err := st.Workflow.SetHomepageVisibility(ctx, created.ID, true, moderator)
	require.NoError(t, err)
	assert.True(t, visible.ShowOnHome)
}

func TestGalleryModeration_RejectForcesOffHomepage(t *testing.T) {
	ctx, st := suite.New(t)

	photographer := testPhotographer()
	moderator := testModerator()

	created, err := st.Workflow.CreateGallery(ctx, workflow.CreateGalleryInput{
		Name:   "Street portraits",
		Images: []string{"c.jpg"},
	}, photographer)
	require.NoError(t, err)

	_, err = st.Workflow.SubmitForReview(ctx, created.ID, photographer)
	require.NoError(t, err)

	_, err = st.Workflow.Moderate(ctx, created.ID, workflow.DecisionApprove, moderator)
	require.NoError(t, err)

	_, err = st.Workflow.SetHomepageVisibility(ctx, created.ID, true, moderator)
	require.NoError(t, err)

	rejected, err := st.Workflow.Moderate(ctx, created.ID, workflow.DecisionReject, moderator)
	require.NoError(t, err)
	assert.Equal(t, models.GalleryStatusRejected, rejected.Status)
	assert.False(t, rejected.ShowOnHome, "отклонение снимает галерею с главной в том же переходе")

	notifications, err := st.Store.LoadNotifications(ctx)
	require.NoError(t, err)
	last := notifications[len(notifications)-1]
	assert.Equal(t, models.NotifSubmissionRejected, last.Type)
	assert.Equal(t, photographer.ID, last.RecipientID)
}

func TestGalleryModeration_StaffGalleriesSkipModeration(t *testing.T) {
	ctx, st := suite.New(t)

	moderator := testModerator()

	created, err := st.Workflow.CreateGallery(ctx, workflow.CreateGalleryInput{
		Name:   "Editorial picks",
		Images: []string{"d.jpg"},
	}, moderator)
	require.NoError(t, err)
	assert.Equal(t, models.GalleryStatusApproved, created.Status)
	require.NotNil(t, created.ModeratedBy)
	assert.Equal(t, moderator.ID, *created.ModeratedBy)

	notifications, err := st.Store.LoadNotifications(ctx)
	require.NoError(t, err)
	assert.Empty(t, notifications, "персонал не проходит собственную модерацию")

	visible, err := st.Workflow.SetHomepageVisibility(ctx, created.ID, true, moderator)
	require.NoError(t, err)
	assert.True(t, visible.ShowOnHome)
}

func TestGalleryModeration_DeleteResolvesOpenRequest(t *testing.T) {
	ctx, st := suite.New(t)

	photographer := testPhotographer()

	created, err := st.Workflow.CreateGallery(ctx, workflow.CreateGalleryInput{
		Name:   "Old archive",
		Images: []string{"e.jpg"},
	}, photographer)
	require.NoError(t, err)

	_, err = st.Workflow.SubmitForReview(ctx, created.ID, photographer)
	require.NoError(t, err)

	err = st.Workflow.DeleteGallery(ctx, created.ID, photographer)
	require.NoError(t, err)

	galleries, err := st.Store.LoadGalleries(ctx)
	require.NoError(t, err)
	assert.Empty(t, galleries)

	notifications, err := st.Store.LoadNotifications(ctx)
	require.NoError(t, err)
	for _, n := range notifications {
		assert.False(t, n.IsOpenRequest(created.ID), "в ящике не остается заявок на удаленную галерею")
	}
}

func TestGalleryModeration_StrangerCannotSubmit(t *testing.T) {
	ctx, st := suite.New(t)

	photographer := testPhotographer()
	stranger := testPhotographer()

	created, err := st.Workflow.CreateGallery(ctx, workflow.CreateGalleryInput{
		Name:   "Private set",
		Images: []string{"f.jpg"},
	}, photographer)
	require.NoError(t, err)

	_, err = st.Workflow.SubmitForReview(ctx, created.ID, stranger)
	require.Error(t, err)
	assert.True(t, errors.Is(err, workflow.ErrNotOwner))

	err = st.Workflow.DeleteGallery(ctx, created.ID, stranger)
	require.Error(t, err)
	assert.True(t, errors.Is(err, workflow.ErrNotOwner))
}
