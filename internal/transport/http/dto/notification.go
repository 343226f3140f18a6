package dto

import (
	"time"

	"photo_vitrine/internal/domain/models"

	"github.com/google/uuid"
)

// NotificationResponse представляет собой DTO уведомления в ленте
type NotificationResponse struct {
	ID             uuid.UUID `json:"id"`
	Type           string    `json:"type"`
	RelatedID      uuid.UUID `json:"related_id"`
	ActionRequired bool      `json:"action_required"`
	Read           bool      `json:"read"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	CreatedAt      time.Time `json:"created_at"`
}

type NotificationFeedResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int                    `json:"unread_count"`
}

func ToNotificationResponse(n models.Notification) NotificationResponse {
	return NotificationResponse{
		ID:             n.ID,
		Type:           string(n.Type),
		RelatedID:      n.RelatedID,
		ActionRequired: n.ActionRequired,
		Read:           n.Read,
		Title:          n.Title,
		Message:        n.Message,
		CreatedAt:      n.CreatedAt,
	}
}
