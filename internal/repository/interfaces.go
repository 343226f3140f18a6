package repository

import (
	"context"
	"time"

	"photo_vitrine/internal/domain/models"

	"github.com/google/uuid"
)

type UserRepository interface {
	SaveUser(ctx context.Context, user models.User) (uuid.UUID, error)
	IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
	UserByIdentifier(ctx context.Context, identifier string) (models.User, error)
	GetUserById(ctx context.Context, userID uuid.UUID) (models.User, error)
}

type TokenRepository interface {
	SaveRefreshToken(ctx context.Context, userID, token string, exp time.Duration) error
	GetRefreshToken(ctx context.Context, userID, token string) (bool, error)
	DeleteRefreshToken(ctx context.Context, userID, token string) error
	DeleteAllUserTokens(ctx context.Context, userID string) error
}

type MediaRepository interface {
	CreateMedia(ctx context.Context, media *models.Media) (*models.Media, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Media, error)
	GetImagesByUploader(ctx context.Context, uploaderID uuid.UUID) ([]models.Media, error)
	DeleteMedia(ctx context.Context, id uuid.UUID) error
}

// GalleryReadRepository обслуживает витрину и списки: точечные выборки
// поверх той же таблицы, в которую пишет хранилище коллекций.
type GalleryReadRepository interface {
	GetGalleryByID(ctx context.Context, id uuid.UUID) (models.Gallery, error)
	GetGalleries(ctx context.Context, statusFilter string, page, perPage int) ([]models.Gallery, int, error)
	GetGalleriesBySubmitter(ctx context.Context, submitterID uuid.UUID) ([]models.Gallery, error)
	GetHomepageGalleries(ctx context.Context) ([]models.Gallery, error)
	GetGalleriesByNames(ctx context.Context, names []string) ([]models.Gallery, error)
	GetGalleryNames(ctx context.Context) ([]models.GalleryNameGroup, error)
}

// NotificationReadRepository обслуживает ленты уведомлений и точечные
// отметки о прочтении. Создание и закрытие заявок идет через workflow.
type NotificationReadRepository interface {
	ListByRecipient(ctx context.Context, recipientID uuid.UUID, filter models.NotificationFilter) ([]models.Notification, error)
	CountUnread(ctx context.Context, recipientID uuid.UUID) (int, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	MarkAllRead(ctx context.Context, recipientID uuid.UUID) error
	Resolve(ctx context.Context, id uuid.UUID) (models.Notification, error)
}
