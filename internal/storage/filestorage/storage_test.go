package storage_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	apperrors "photo_vitrine/internal/storage"
	storage "photo_vitrine/internal/storage/filestorage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupFileStorage(t *testing.T, maxSize int64) (*storage.LocalFileStorage, string) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "filestorage_test")
	require.NoError(t, err)

	fs, err := storage.NewLocalFileStorage(tempDir, "http://test.local", maxSize)
	require.NoError(t, err)

	t.Cleanup(func() { _ = os.RemoveAll(tempDir) })

	return fs, tempDir
}

func createTestFile(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)

	_, err = part.Write([]byte(content))
	require.NoError(t, err)

	err = writer.Close()
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	file, header, err := req.FormFile("file")
	require.NoError(t, err)
	file.Close()

	return header
}

func TestLocalFileStorage_Save(t *testing.T) {
	fs, _ := setupFileStorage(t, 0)

	ctx := context.Background()

	t.Run("successful save", func(t *testing.T) {
		testFile := createTestFile(t, "shot.jpg", "test content")

		filePath, size, err := fs.Save(ctx, testFile, "subdir")
		require.NoError(t, err)

		assert.Equal(t, filepath.Join("subdir", "shot.jpg"), filePath)
		assert.Equal(t, int64(12), size)

		fullPath := fs.GetFullPath(filePath)
		data, err := os.ReadFile(fullPath)
		require.NoError(t, err)
		assert.Equal(t, "test content", string(data))
	})

	t.Run("save with empty subpath", func(t *testing.T) {
		testFile := createTestFile(t, "shot.png", "test content")

		filePath, _, err := fs.Save(ctx, testFile, "")
		require.NoError(t, err)
		assert.Equal(t, "shot.png", filePath)
	})

	t.Run("rejects non-image extension", func(t *testing.T) {
		testFile := createTestFile(t, "notes.txt", "plain text")

		_, _, err := fs.Save(ctx, testFile, "subdir")
		assert.ErrorIs(t, err, apperrors.ErrInvalidFileType)
	})

	t.Run("rejects oversized file", func(t *testing.T) {
		small, _ := setupFileStorage(t, 4)
		testFile := createTestFile(t, "big.jpg", "more than four bytes")

		_, _, err := small.Save(ctx, testFile, "subdir")
		assert.ErrorIs(t, err, apperrors.ErrFileTooLarge)
	})

	t.Run("save with context cancellation", func(t *testing.T) {
		testFile := createTestFile(t, "late.jpg", "test content")

		ctx, cancel := context.WithCancel(ctx)
		cancel() // Отменяем контекст сразу

		_, _, err := fs.Save(ctx, testFile, "subdir")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestLocalFileStorage_Delete(t *testing.T) {
	fs, _ := setupFileStorage(t, 0)

	ctx := context.Background()
	testFile := createTestFile(t, "to_delete.jpg", "content")

	t.Run("successful delete", func(t *testing.T) {
		filePath, _, err := fs.Save(ctx, testFile, "")
		require.NoError(t, err)

		err = fs.Delete(ctx, filePath)
		require.NoError(t, err)

		_, err = os.Stat(fs.GetFullPath(filePath))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("delete missing file", func(t *testing.T) {
		err := fs.Delete(ctx, "nope/missing.jpg")
		assert.Error(t, err)
	})
}
