package postgresql

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"photo_vitrine/internal/domain/models"
	"photo_vitrine/internal/storage"
)

// Storage — хранилище именованных коллекций записей. Транзакций между
// коллекциями нет: атомарна только запись одной коллекции целиком.
// Workflow каждый вызов перечитывает коллекции заново, снимки не кэшируются.
type Storage struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

const (
	// collections
	galleriesTable     = "galleries"
	notificationsTable = "notifications"
)

func New(ctx context.Context, dsn string) (*Storage, error) {
	const op = "storage.postgresql.New"

	db, err := pgxpool.Connect(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}, nil
}

func (s *Storage) Stop() {
	s.db.Close()
}

func (s *Storage) Pool() *pgxpool.Pool {
	return s.db
}

// LoadGalleries возвращает свежий снимок коллекции галерей
func (s *Storage) LoadGalleries(ctx context.Context) ([]models.Gallery, error) {
	const op = "storage.postgresql.LoadGalleries"

	query, args, err := s.sb.Select(
		"id", "name", "description", "images",
		"submitter_id", "submitter_name", "submitter_role", "status", "show_on_home",
		"moderated_by", "moderated_by_name", "moderated_at",
		"is_notified", "created_at", "requested_at",
	).
		From(galleriesTable).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %v: %w", op, err, storage.ErrStoreUnavailable)
	}
	defer rows.Close()

	var galleries []models.Gallery
	for rows.Next() {
		var g models.Gallery
		err := rows.Scan(
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
		if err != nil {
			return nil, fmt.Errorf("%s: %v: %w", op, err, storage.ErrStoreUnavailable)
		}
		galleries = append(galleries, g)
	}

	// Обрыв посреди выборки завершает итерацию без ошибки в Next;
	// усеченный снимок при следующем Save затер бы недочитанные записи.
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %v: %w", op, err, storage.ErrStoreUnavailable)
	}

	return galleries, nil
}

// SaveGalleries замещает коллекцию галерей целиком в одной транзакции
func (s *Storage) SaveGalleries(ctx context.Context, galleries []models.Gallery) error {
	const op = "storage.postgresql.SaveGalleries"

	ins := s.sb.Insert(galleriesTable).Columns(
		"id", "name", "description", "images",
		"submitter_id", "submitter_name", "submitter_role", "status", "show_on_home",
		"moderated_by", "moderated_by_name", "moderated_at",
		"is_notified", "created_at", "requested_at",
	)
	for _, g := range galleries {
		ins = ins.Values(
			g.ID, g.Name, g.Description, g.Images,
			g.SubmitterID, g.SubmitterName, g.SubmitterRole, g.Status, g.ShowOnHome,
			g.ModeratedBy, g.ModeratedByName, g.ModeratedAt,
			g.IsNotified, g.CreatedAt, g.RequestedAt,
		)
	}

	return s.replaceCollection(ctx, op, galleriesTable, len(galleries), ins)
}

// LoadNotifications возвращает свежий снимок коллекции уведомлений
func (s *Storage) LoadNotifications(ctx context.Context) ([]models.Notification, error) {
	const op = "storage.postgresql.LoadNotifications"

	query, args, err := s.sb.Select(
		"id", "type", "recipient_id", "related_id",
		"action_required", "read", "title", "message", "created_at",
	).
		From(notificationsTable).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %v: %w", op, err, storage.ErrStoreUnavailable)
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		err := rows.Scan(
			&n.ID,
			&n.Type,
			&n.RecipientID,
			&n.RelatedID,
			&n.ActionRequired,
			&n.Read,
			&n.Title,
			&n.Message,
			&n.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %v: %w", op, err, storage.ErrStoreUnavailable)
		}
		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %v: %w", op, err, storage.ErrStoreUnavailable)
	}

	return notifications, nil
}

// SaveNotifications замещает коллекцию уведомлений целиком в одной транзакции
func (s *Storage) SaveNotifications(ctx context.Context, notifications []models.Notification) error {
	const op = "storage.postgresql.SaveNotifications"

	ins := s.sb.Insert(notificationsTable).Columns(
		"id", "type", "recipient_id", "related_id",
		"action_required", "read", "title", "message", "created_at",
	)
	for _, n := range notifications {
		ins = ins.Values(
			n.ID, n.Type, n.RecipientID, n.RelatedID,
			n.ActionRequired, n.Read, n.Title, n.Message, n.CreatedAt,
		)
	}

	return s.replaceCollection(ctx, op, notificationsTable, len(notifications), ins)
}

// replaceCollection выполняет delete+insert коллекции в одной транзакции.
// Атомарность гарантируется только в пределах одной коллекции.
func (s *Storage) replaceCollection(ctx context.Context, op, table string, count int, ins sq.InsertBuilder) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("%s: %v: %w", op, err, storage.ErrStoreUnavailable)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("%s: %v: %w", op, err, storage.ErrStoreUnavailable)
	}

	if count > 0 {
		query, args, err := ins.ToSql()
		if err != nil {
			return fmt.Errorf("%s: can't build sql: %w", op, err)
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("%s: %v: %w", op, err, storage.ErrStoreUnavailable)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %v: %w", op, err, storage.ErrStoreUnavailable)
	}

	return nil
}
