package dto

import (
	"mime/multipart"
	"time"

	"photo_vitrine/internal/domain/models"

	"github.com/google/uuid"
)

type MediaUploadInput struct {
	UploaderID uuid.UUID             `json:"uploader_id" validate:"required"`
	File       *multipart.FileHeader `json:"-" form:"file" validate:"required"`
	MediaType  string                `json:"media_type" validate:"required,oneof=photo cover"`

	Width  *int `json:"width,omitempty" validate:"omitempty,min=1"`
	Height *int `json:"height,omitempty" validate:"omitempty,min=1"`
}

// ToDomain преобразует DTO в доменную модель
func (input *MediaUploadInput) ToDomain(filePath string, fileSize int64) models.Media {
	return models.Media{
		ID:               uuid.New(),
		UploaderID:       input.UploaderID,
		CreatedAt:        time.Now().UTC(),
		MediaType:        models.MediaType(input.MediaType),
		OriginalFilename: input.File.Filename,
		StoragePath:      filePath,
		FileSize:         fileSize,
		MimeType:         input.File.Header.Get("Content-Type"),
		Width:            input.Width,
		Height:           input.Height,
	}
}

type MediaResponse struct {
	ID               uuid.UUID `json:"id"`
	UploaderID       uuid.UUID `json:"uploader_id"`
	MediaType        string    `json:"media_type"`
	OriginalFilename string    `json:"original_filename"`
	URL              string    `json:"url"`
	FileSize         int64     `json:"file_size"`
	Width            *int      `json:"width,omitempty"`
	Height           *int      `json:"height,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}
