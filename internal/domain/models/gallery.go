package models

import (
	"time"

	"github.com/google/uuid"
)

type GalleryStatus string

const (
	GalleryStatusDraft    GalleryStatus = "draft"
	GalleryStatusPending  GalleryStatus = "pending"
	GalleryStatusApproved GalleryStatus = "approved"
	GalleryStatusRejected GalleryStatus = "rejected"
)

// Gallery представляет собой подборку работ фотографа,
// предложенную для размещения на главной странице
type Gallery struct {
	ID              uuid.UUID     `json:"id"`                // Уникальный идентификатор галереи
	Name            string        `json:"name"`              // Название категории (не уникально, галереи группируются по имени)
	Description     string        `json:"description"`       // Описание галереи
	Images          []string      `json:"images"`            // Массив путей/URL изображений
	SubmitterID     uuid.UUID     `json:"submitter_id"`      // ID автора галереи
	SubmitterName   string        `json:"submitter_name"`    // Отображаемое имя автора
	SubmitterRole   ActorRole     `json:"submitter_role"`    // Роль автора: staff-галереи не порождают уведомлений самому персоналу
	Status          GalleryStatus `json:"status"`            // draft | pending | approved | rejected
	ShowOnHome      bool          `json:"show_on_home"`      // Флаг размещения на главной (только для approved)
	ModeratedBy     *uuid.UUID    `json:"moderated_by"`      // ID последнего модератора
	ModeratedByName string        `json:"moderated_by_name"` // Имя последнего модератора
	ModeratedAt     *time.Time    `json:"moderated_at"`      // Время последней модерации
	IsNotified      bool          `json:"is_notified"`       // Грубый маркер "новая заявка" для очереди модерации
	CreatedAt       time.Time     `json:"created_at"`        // Дата создания
	RequestedAt     *time.Time    `json:"requested_at"`      // Время перехода в pending
}

// GalleryNameGroup — сводка по категории: галереи группируются по
// имени, имя не уникально
type GalleryNameGroup struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// IsValid проверяет, что статус входит в известный набор
func (s GalleryStatus) IsValid() bool {
	switch s {
	case GalleryStatusDraft, GalleryStatusPending, GalleryStatusApproved, GalleryStatusRejected:
		return true
	}
	return false
}
