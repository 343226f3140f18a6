package storage

import "errors"

var (
	ErrUserExists   = errors.New("user already exists")
	ErrUserNotFound = errors.New("user not found")

	ErrGalleryNotFound      = errors.New("gallery not found")
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrStoreUnavailable сигнализирует об отказе хранилища коллекций.
	// Workflow не повторяет запись сам: повторная попытка после частичной
	// записи может продублировать уведомление.
	ErrStoreUnavailable = errors.New("record store unavailable")
)

var (
	ErrFileTooLarge    = errors.New("file size exceeds limit")
	ErrInvalidFileType = errors.New("invalid file type")
	ErrFileNotFound    = errors.New("file not found")
)
