package services

import (
	"fmt"
	"time"

	"photo_vitrine/internal/domain/models"

	"github.com/google/uuid"
)

// syncOnSubmit создает заявку на модерацию в ящике персонала.
// Если открытая заявка по этой галерее уже существует — no-op,
// чтобы повторный submit не плодил дубликаты.
func syncOnSubmit(notifications []models.Notification, g models.Gallery, now time.Time) []models.Notification {
	for _, n := range notifications {
		if n.IsOpenRequest(g.ID) {
			return notifications
		}
	}

	request := models.Notification{
		ID:             uuid.New(),
		Type:           models.NotifSubmissionRequest,
		RecipientID:    models.StaffInboxID,
		RelatedID:      g.ID,
		ActionRequired: true,
		Read:           false,
		Title:          "New gallery submission",
		Message:        fmt.Sprintf("%s requests homepage placement for gallery %q", g.SubmitterName, g.Name),
		CreatedAt:      now,
	}

	return append(notifications, request)
}

// syncOnModerate сначала закрывает открытую заявку по галерее (если она
// есть), затем создает уведомление автору о результате. Порядок важен:
// читатель коллекции не должен увидеть две открытые заявки одновременно.
// Персонал не уведомляет сам себя о собственных галереях.
func syncOnModerate(notifications []models.Notification, g models.Gallery, decision Decision, now time.Time) []models.Notification {
	notifications = resolveOpenRequest(notifications, g.ID)

	if g.SubmitterRole == models.RoleStaff {
		return notifications
	}

	result := models.Notification{
		ID:          uuid.New(),
		RecipientID: g.SubmitterID,
		RelatedID:   g.ID,
		Read:        false,
		CreatedAt:   now,
	}

	switch decision {
	case DecisionApprove:
		result.Type = models.NotifSubmissionApproved
		result.Title = "Gallery approved"
		result.Message = fmt.Sprintf("Your gallery %q has been approved for the homepage", g.Name)
	case DecisionReject:
		result.Type = models.NotifSubmissionRejected
		result.Title = "Gallery rejected"
		result.Message = fmt.Sprintf("Your gallery %q has been rejected", g.Name)
	}

	return append(notifications, result)
}

// resolveOpenRequest закрывает открытую заявку по галерее: поиск перед
// записью делает закрытие идемпотентным, повторный вызов ничего не меняет
func resolveOpenRequest(notifications []models.Notification, galleryID uuid.UUID) []models.Notification {
	for i := range notifications {
		if notifications[i].IsOpenRequest(galleryID) {
			notifications[i].ActionRequired = false
			notifications[i].Read = true
		}
	}
	return notifications
}
