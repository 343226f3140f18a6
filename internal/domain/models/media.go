package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type MediaType string

const (
	MediaTypePhoto MediaType = "photo"
	MediaTypeCover MediaType = "cover"
)

// Media представляет загруженный файл изображения
type Media struct {
	ID               uuid.UUID `json:"id" db:"id"`
	UploaderID       uuid.UUID `json:"uploader_id" db:"uploader_id"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	MediaType        MediaType `json:"media_type" db:"media_type"`
	OriginalFilename string    `json:"original_filename" db:"original_filename"`
	StoragePath      string    `json:"storage_path" db:"storage_path"`
	FileSize         int64     `json:"file_size" db:"file_size"`
	MimeType         string    `json:"mime_type,omitempty" db:"mime_type"`
	Width            *int      `json:"width,omitempty" db:"width"`
	Height           *int      `json:"height,omitempty" db:"height"`
}

// Validate проверяет корректность данных изображения
func (m *Media) Validate() error {
	var validationErrors []string

	if m.UploaderID == uuid.Nil {
		validationErrors = append(validationErrors, "uploader ID is required")
	}
	if m.OriginalFilename == "" {
		validationErrors = append(validationErrors, "original filename is required")
	}
	if len(m.OriginalFilename) > 255 {
		validationErrors = append(validationErrors, "original filename must be 255 characters or less")
	}
	if m.StoragePath == "" {
		validationErrors = append(validationErrors, "storage path is required")
	}
	if m.FileSize <= 0 {
		validationErrors = append(validationErrors, "file size must be positive")
	}

	switch m.MediaType {
	case MediaTypePhoto, MediaTypeCover:
		if m.Width == nil || m.Height == nil {
			validationErrors = append(validationErrors, "width and height are required")
		} else if *m.Width <= 0 || *m.Height <= 0 {
			validationErrors = append(validationErrors, "width and height must be positive values")
		}
	default:
		validationErrors = append(validationErrors,
			fmt.Sprintf("invalid media type '%s', must be one of: [%s %s]",
				m.MediaType, MediaTypePhoto, MediaTypeCover))
	}

	if m.MimeType != "" && !strings.HasPrefix(m.MimeType, "image/") {
		validationErrors = append(validationErrors, "only image uploads are accepted")
	}

	if len(validationErrors) > 0 {
		return &MediaValidationError{Errors: validationErrors}
	}

	return nil
}

// MediaValidationError кастомный тип ошибки для валидации
type MediaValidationError struct {
	Errors []string
}

func (e *MediaValidationError) Error() string {
	return fmt.Sprintf("media validation failed: %s", strings.Join(e.Errors, "; "))
}

// IsMediaValidationError проверяет, является ли ошибка ошибкой валидации
func IsMediaValidationError(err error) bool {
	_, ok := err.(*MediaValidationError)
	return ok
}
