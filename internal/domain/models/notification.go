package models

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotifSubmissionRequest  NotificationType = "submission_request"
	NotifSubmissionApproved NotificationType = "submission_approved"
	NotifSubmissionRejected NotificationType = "submission_rejected"
)

// StaffInboxID — общий ящик модераторов. Заявки на публикацию
// адресуются ему, а не конкретному администратору.
var StaffInboxID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

// Notification представляет собой уведомление в ленте пользователя или модератора
type Notification struct {
	ID             uuid.UUID        `json:"id"`              // Уникальный идентификатор уведомления
	Type           NotificationType `json:"type"`            // Тип уведомления
	RecipientID    uuid.UUID        `json:"recipient_id"`    // Получатель (автор или ящик модераторов)
	RelatedID      uuid.UUID        `json:"related_id"`      // ID галереи, к которой относится уведомление
	ActionRequired bool             `json:"action_required"` // true только для открытой заявки на модерацию
	Read           bool             `json:"read"`            // Флаг прочтения
	Title          string           `json:"title"`
	Message        string           `json:"message"`
	CreatedAt      time.Time        `json:"created_at"`
}

// NotificationFilter сужает выборку ленты уведомлений
type NotificationFilter struct {
	UnreadOnly         bool
	ActionRequiredOnly bool
}

// IsOpenRequest сообщает, является ли уведомление открытой заявкой
// на модерацию указанной галереи
func (n Notification) IsOpenRequest(galleryID uuid.UUID) bool {
	return n.Type == NotifSubmissionRequest && n.RelatedID == galleryID && n.ActionRequired
}
