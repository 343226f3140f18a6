package app

import (
	"context"
	"log/slog"

	httpapp "photo_vitrine/internal/app/http"
	"photo_vitrine/internal/config"
	"photo_vitrine/internal/repository"
	gallery "photo_vitrine/internal/services/gallery_service"
	media "photo_vitrine/internal/services/media_service"
	notification "photo_vitrine/internal/services/notification_service"
	token "photo_vitrine/internal/services/token_service"
	user "photo_vitrine/internal/services/user_service"
	workflow "photo_vitrine/internal/services/workflow_service"
	filestorage "photo_vitrine/internal/storage/filestorage"
	"photo_vitrine/internal/storage/postgresql"
	redisapp "photo_vitrine/internal/storage/redis"
	httprouters "photo_vitrine/internal/transport/http"
)

type App struct {
	HTTPServer *httpapp.Server

	store *postgresql.Storage
	redis *redisapp.Client
}

func New(log *slog.Logger, cfg *config.Config) *App {
	store, err := postgresql.New(context.Background(), cfg.DSN)
	if err != nil {
		panic(err)
	}

	redisClient := redisapp.NewClient(cfg.Redis.RedisAddr, cfg.Redis.RedisPassword, cfg.Redis.RedisDB)
	if err := redisClient.HealthCheck(context.Background()); err != nil {
		panic(err)
	}

	fileStorage, err := filestorage.NewLocalFileStorage(cfg.FileStorage.BaseDir, cfg.FileStorage.BaseURL, cfg.FileStorage.MaxSize)
	if err != nil {
		panic(err)
	}

	// пул соединений один: точечные выборки идут через репозитории,
	// коллекции целиком пишет хранилище
	repo := repository.NewRepository(store.Pool())

	tokenService := token.NewTokenService(repository.NewRedisTokenRepo(redisClient), cfg.AppSecret)
	userService := user.NewUserService(log, repo.User, tokenService)

	homeCache := gallery.NewHomeCache(cfg.Homepage.CacheTTL)
	galleryService := gallery.NewGalleryService(log, repo.Gallery, homeCache)
	notificationService := notification.NewNotificationService(log, repo.Notification)
	workflowService := workflow.NewWorkflowService(log, store, homeCache)
	mediaService := media.NewMediaService(log, repo.Media, fileStorage)

	routers := httprouters.NewRouter(log, userService, tokenService, mediaService, galleryService, notificationService, workflowService)

	server := httpapp.New(log, cfg.AppSecret, cfg.HTTP.Host, cfg.HTTP.Port, routers)
	server.BuildRouters()

	return &App{
		HTTPServer: server,
		store:      store,
		redis:      redisClient,
	}
}

// Stop закрывает внешние соединения после остановки HTTP-сервера
func (a *App) Stop() {
	a.store.Stop()
	_ = a.redis.Stop()
}
