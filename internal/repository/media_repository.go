package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"photo_vitrine/internal/domain/models"
	"photo_vitrine/internal/storage"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

var mediaColumns = []string{
	"id",
	"uploader_id",
	"created_at",
	"media_type",
	"original_filename",
	"storage_path",
	"file_size",
	"mime_type",
	"width",
	"height",
}

type MediaRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewMediaRepository(db *pgxpool.Pool) *MediaRepo {
	return &MediaRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *MediaRepo) CreateMedia(ctx context.Context, media *models.Media) (*models.Media, error) {
	const op = "repository.media_repository.CreateMedia"

	query, args, err := r.sb.Insert("media").
		Columns(mediaColumns...).
		Values(
			media.ID,
			media.UploaderID,
			media.CreatedAt,
			media.MediaType,
			media.OriginalFilename,
			media.StoragePath,
			media.FileSize,
			media.MimeType,
			media.Width,
			media.Height,
		).
		Suffix("RETURNING " + columnsList(mediaColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %s %w", op, err)
	}

	created, err := scanMedia(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to create media: %s %w", op, err)
	}

	return created, nil
}

func (r *MediaRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Media, error) {
	const op = "repository.media_repository.FindByID"

	query, args, err := r.sb.Select(mediaColumns...).
		From("media").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %s %w", op, err)
	}

	media, err := scanMedia(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrFileNotFound)
		}
		return nil, fmt.Errorf("failed to get media: %s %w", op, err)
	}

	return media, nil
}

// GetImagesByUploader возвращает все снимки фотографа, новые сверху
func (r *MediaRepo) GetImagesByUploader(ctx context.Context, uploaderID uuid.UUID) ([]models.Media, error) {
	const op = "repository.media_repository.GetImagesByUploader"

	query, args, err := r.sb.Select(mediaColumns...).
		From("media").
		Where(sq.Eq{"uploader_id": uploaderID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}
	defer rows.Close()

	var images []models.Media
	for rows.Next() {
		img, err := scanMedia(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan row: %w", op, err)
		}
		images = append(images, *img)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows error: %w", op, err)
	}

	return images, nil
}

func (r *MediaRepo) DeleteMedia(ctx context.Context, id uuid.UUID) error {
	const op = "repository.media_repository.DeleteMedia"

	query, args, err := r.sb.Delete("media").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrFileNotFound)
	}

	return nil
}

func scanMedia(row pgx.Row) (*models.Media, error) {
	var m models.Media
	err := row.Scan(
		&m.ID,
		&m.UploaderID,
		&m.CreatedAt,
		&m.MediaType,
		&m.OriginalFilename,
		&m.StoragePath,
		&m.FileSize,
		&m.MimeType,
		&m.Width,
		&m.Height,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func columnsList(cols []string) string {
	return strings.Join(cols, ", ")
}
