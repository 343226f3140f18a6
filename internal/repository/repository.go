package repository

import (
	"github.com/jackc/pgx/v4/pgxpool"
)

type Repository struct {
	db           *pgxpool.Pool
	User         UserRepository
	Media        MediaRepository
	Gallery      GalleryReadRepository
	Notification NotificationReadRepository
}

// NewRepository собирает репозитории чтения поверх общего пула:
// соединениями владеет хранилище коллекций, репозитории его не закрывают.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{
		db:           db,
		User:         NewUserRepository(db),
		Media:        NewMediaRepository(db),
		Gallery:      NewGalleryRepo(db),
		Notification: NewNotificationRepo(db),
	}
}
