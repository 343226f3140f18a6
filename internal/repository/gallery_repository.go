package repository

import (
	"context"
	"errors"
	"fmt"

	"photo_vitrine/internal/domain/models"
	"photo_vitrine/internal/storage"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/lib/pq"
)

var galleryColumns = []string{
	"id", "name", "description", "images",
	"submitter_id", "submitter_name", "submitter_role", "status", "show_on_home",
	"moderated_by", "moderated_by_name", "moderated_at",
	"is_notified", "created_at", "requested_at",
}

type GalleryRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewGalleryRepo(db *pgxpool.Pool) *GalleryRepo {
	return &GalleryRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// GetGalleryByID возвращает галерею по ID
func (r *GalleryRepo) GetGalleryByID(ctx context.Context, id uuid.UUID) (models.Gallery, error) {
	const op = "repository.gallery_repository.GetGalleryByID"

	query, args, err := r.sb.Select(galleryColumns...).
		From("galleries").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	gallery, err := scanGallery(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Gallery{}, fmt.Errorf("%s: %w", op, storage.ErrGalleryNotFound)
		}
		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	return gallery, nil
}

// GetGalleries возвращает страницу галерей с фильтром по статусу.
// statusFilter: "all" либо один из статусов жизненного цикла.
func (r *GalleryRepo) GetGalleries(ctx context.Context, statusFilter string, page, perPage int) ([]models.Gallery, int, error) {
	const op = "repository.gallery_repository.GetGalleries"

	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 10
	}

	queryBuilder := r.sb.Select(galleryColumns...).From("galleries")
	countBuilder := r.sb.Select("COUNT(*)").From("galleries")

	if statusFilter != "all" {
		if !models.GalleryStatus(statusFilter).IsValid() {
			return nil, 0, fmt.Errorf("%s: invalid status filter '%s'", op, statusFilter)
		}
		queryBuilder = queryBuilder.Where(sq.Eq{"status": statusFilter})
		countBuilder = countBuilder.Where(sq.Eq{"status": statusFilter})
	}

	totalCount, err := r.count(ctx, countBuilder)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	query, args, err := queryBuilder.
		OrderBy("created_at DESC").
		Limit(uint64(perPage)).
		Offset(uint64((page - 1) * perPage)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	galleries, err := r.queryGalleries(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	return galleries, totalCount, nil
}

// GetGalleriesBySubmitter возвращает все галереи автора, включая черновики
func (r *GalleryRepo) GetGalleriesBySubmitter(ctx context.Context, submitterID uuid.UUID) ([]models.Gallery, error) {
	const op = "repository.gallery_repository.GetGalleriesBySubmitter"

	query, args, err := r.sb.Select(galleryColumns...).
		From("galleries").
		Where(sq.Eq{"submitter_id": submitterID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	galleries, err := r.queryGalleries(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return galleries, nil
}

// GetHomepageGalleries возвращает витрину: одобренные галереи,
// отмеченные для показа на главной
func (r *GalleryRepo) GetHomepageGalleries(ctx context.Context) ([]models.Gallery, error) {
	const op = "repository.gallery_repository.GetHomepageGalleries"

	query, args, err := r.sb.Select(galleryColumns...).
		From("galleries").
		Where(sq.Eq{
			"status":       models.GalleryStatusApproved,
			"show_on_home": true,
		}).
		OrderBy("moderated_at DESC NULLS LAST").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	galleries, err := r.queryGalleries(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return galleries, nil
}

// GetGalleriesByNames возвращает одобренные галереи указанных категорий
func (r *GalleryRepo) GetGalleriesByNames(ctx context.Context, names []string) ([]models.Gallery, error) {
	const op = "repository.gallery_repository.GetGalleriesByNames"

	if len(names) == 0 {
		return nil, nil
	}

	query, args, err := r.sb.Select(galleryColumns...).
		From("galleries").
		Where(sq.Eq{"status": models.GalleryStatusApproved}).
		Where("name = ANY(?)", pq.Array(names)).
		OrderBy("name", "created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	galleries, err := r.queryGalleries(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return galleries, nil
}

// GetGalleryNames возвращает категории: имена одобренных галерей
// с числом подборок в каждой
func (r *GalleryRepo) GetGalleryNames(ctx context.Context) ([]models.GalleryNameGroup, error) {
	const op = "repository.gallery_repository.GetGalleryNames"

	query, args, err := r.sb.Select("name", "COUNT(*)").
		From("galleries").
		Where(sq.Eq{"status": models.GalleryStatusApproved}).
		GroupBy("name").
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var groups []models.GalleryNameGroup
	for rows.Next() {
		var g models.GalleryNameGroup
		if err := rows.Scan(&g.Name, &g.Count); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		groups = append(groups, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return groups, nil
}

func (r *GalleryRepo) count(ctx context.Context, builder sq.SelectBuilder) (int, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error build query: %w", err)
	}

	var count int
	err = r.db.QueryRow(ctx, query, args...).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("error execute query: %w", err)
	}

	return count, nil
}

func (r *GalleryRepo) queryGalleries(ctx context.Context, query string, args ...interface{}) ([]models.Gallery, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var galleries []models.Gallery
	for rows.Next() {
		gallery, err := scanGallery(rows)
		if err != nil {
			return nil, err
		}
		galleries = append(galleries, gallery)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return galleries, nil
}

func scanGallery(row pgx.Row) (models.Gallery, error) {
	var g models.Gallery
	err := row.Scan(
		&g.ID,
		&g.Name,
		&g.Description,
		&g.Images,
		&g.SubmitterID,
		&g.SubmitterName,
		&g.SubmitterRole,
		&g.Status,
		&g.ShowOnHome,
		&g.ModeratedBy,
		&g.ModeratedByName,
		&g.ModeratedAt,
		&g.IsNotified,
		&g.CreatedAt,
		&g.RequestedAt,
	)
	return g, err
}
