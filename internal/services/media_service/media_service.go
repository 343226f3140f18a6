package services

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"photo_vitrine/internal/domain/models"
	"photo_vitrine/internal/lib/logger/sl"
	"photo_vitrine/internal/repository"
	storage "photo_vitrine/internal/storage/filestorage"
	"photo_vitrine/internal/transport/http/dto"

	"github.com/google/uuid"
)

type MediaService struct {
	log         *slog.Logger
	repo        repository.MediaRepository
	fileStorage storage.FileStorage
}

func NewMediaService(log *slog.Logger, repo repository.MediaRepository, fileStorage storage.FileStorage) *MediaService {
	return &MediaService{
		log:         log,
		repo:        repo,
		fileStorage: fileStorage,
	}
}

// UploadMedia сохраняет файл изображения и регистрирует его в БД.
// При любой ошибке после записи на диск файл удаляется.
func (s *MediaService) UploadMedia(ctx context.Context, input dto.MediaUploadInput) (*models.Media, error) {
	const op = "media_service.UploadMedia"

	log := s.log.With(
		slog.String("op", op),
		slog.String("media_type", input.MediaType),
	)

	log.Info("upload media")

	filePath, fileSize, err := s.fileStorage.Save(ctx, input.File, filepath.Join("user_uploads", input.UploaderID.String()))
	if err != nil {
		log.Error("failed to save file", sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	media := input.ToDomain(filePath, fileSize)

	if err := media.Validate(); err != nil {
		_ = s.fileStorage.Delete(ctx, filePath)
		log.Error("media validation failed", sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	createdMedia, err := s.repo.CreateMedia(ctx, &media)
	if err != nil {
		_ = s.fileStorage.Delete(ctx, filePath)
		log.Error("failed to save media to database", sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return createdMedia, nil
}

// ListUserImages возвращает все изображения, загруженные пользователем
func (s *MediaService) ListUserImages(ctx context.Context, uploaderID uuid.UUID) ([]dto.MediaResponse, error) {
	const op = "media_service.ListUserImages"
	log := s.log.With(
		slog.String("op", op),
		slog.String("uploader_id", uploaderID.String()),
	)

	images, err := s.repo.GetImagesByUploader(ctx, uploaderID)
	if err != nil {
		log.Error("failed to list user images", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]dto.MediaResponse, 0, len(images))
	for _, m := range images {
		out = append(out, s.toMediaResponse(m))
	}
	return out, nil
}

// DeleteMedia удаляет запись и файл. Запись удаляется первой: осиротевший
// файл безопаснее осиротевшей записи.
func (s *MediaService) DeleteMedia(ctx context.Context, id uuid.UUID) error {
	const op = "media_service.DeleteMedia"
	log := s.log.With(
		slog.String("op", op),
		slog.String("media_id", id.String()),
	)

	media, err := s.repo.FindByID(ctx, id)
	if err != nil {
		log.Error("failed to find media", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.DeleteMedia(ctx, id); err != nil {
		log.Error("failed to delete media record", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.fileStorage.Delete(ctx, media.StoragePath); err != nil {
		log.Warn("media record deleted but file removal failed", sl.Err(err))
	}

	log.Info("media deleted")
	return nil
}

func (s *MediaService) toMediaResponse(m models.Media) dto.MediaResponse {
	return dto.MediaResponse{
		ID:               m.ID,
		UploaderID:       m.UploaderID,
		MediaType:        string(m.MediaType),
		OriginalFilename: m.OriginalFilename,
		URL:              s.fileStorage.BaseURL() + "/" + m.StoragePath,
		FileSize:         m.FileSize,
		Width:            m.Width,
		Height:           m.Height,
		CreatedAt:        m.CreatedAt,
	}
}
