package dto

import (
	"time"

	"photo_vitrine/internal/domain/models"

	"github.com/google/uuid"
)

// GalleryResponse представляет собой DTO для ответа с данными о галерее
type GalleryResponse struct {
	ID              uuid.UUID  `json:"id"`                          // Уникальный идентификатор галереи
	Name            string     `json:"name"`                        // Название категории
	Description     string     `json:"description"`                 // Описание галереи
	Images          []string   `json:"images"`                      // Список изображений в галерее
	SubmitterID     uuid.UUID  `json:"submitter_id"`                // Идентификатор автора
	SubmitterName   string     `json:"submitter_name"`              // Отображаемое имя автора
	Status          string     `json:"status"`                      // draft | pending | approved | rejected
	ShowOnHome      bool       `json:"show_on_home"`                // Размещена ли на главной странице
	ModeratedByName string     `json:"moderated_by_name,omitempty"` // Имя последнего модератора
	ModeratedAt     *time.Time `json:"moderated_at,omitempty"`      // Время последней модерации
	CreatedAt       time.Time  `json:"created_at"`                  // Дата создания
	RequestedAt     *time.Time `json:"requested_at,omitempty"`      // Время отправки на модерацию
}

type CreateGalleryRequest struct {
	ActorID     uuid.UUID `json:"actor_id" validate:"required"`
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description"`
	Images      []string  `json:"images" validate:"required,min=1"`
}

type UpdateGalleryRequest struct {
	ActorID     uuid.UUID `json:"actor_id" validate:"required"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Images      []string  `json:"images"`
}

type ModerateGalleryRequest struct {
	ActorID  uuid.UUID `json:"actor_id" validate:"required"`
	Decision string    `json:"decision" validate:"required,oneof=approve reject"`
}

type HomepageVisibilityRequest struct {
	ActorID    uuid.UUID `json:"actor_id" validate:"required"`
	ShowOnHome bool      `json:"show_on_home"`
}

// ActorRequest используется операциями, которым кроме действующего
// лица ничего не нужно
type ActorRequest struct {
	ActorID uuid.UUID `json:"actor_id" validate:"required"`
}

type GalleryListResponse struct {
	Galleries  []GalleryResponse `json:"galleries"`
	TotalCount int               `json:"total_count"`
	Page       int               `json:"page"`
	PerPage    int               `json:"per_page"`
}

// GalleryNameResponse — сводка по категории галерей
type GalleryNameResponse struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func ToGalleryResponse(g models.Gallery) GalleryResponse {
	return GalleryResponse{
		ID:              g.ID,
		Name:            g.Name,
		Description:     g.Description,
		Images:          g.Images,
		SubmitterID:     g.SubmitterID,
		SubmitterName:   g.SubmitterName,
		Status:          string(g.Status),
		ShowOnHome:      g.ShowOnHome,
		ModeratedByName: g.ModeratedByName,
		ModeratedAt:     g.ModeratedAt,
		CreatedAt:       g.CreatedAt,
		RequestedAt:     g.RequestedAt,
	}
}
