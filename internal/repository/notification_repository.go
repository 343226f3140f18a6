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
)

var notificationColumns = []string{
	"id", "type", "recipient_id", "related_id",
	"action_required", "read", "title", "message", "created_at",
}

type NotificationRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewNotificationRepo(db *pgxpool.Pool) *NotificationRepo {
	return &NotificationRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// ListByRecipient возвращает ленту уведомлений получателя, новые сверху
func (r *NotificationRepo) ListByRecipient(ctx context.Context, recipientID uuid.UUID, filter models.NotificationFilter) ([]models.Notification, error) {
	const op = "repository.notification_repository.ListByRecipient"

	queryBuilder := r.sb.Select(notificationColumns...).
		From("notifications").
		Where(sq.Eq{"recipient_id": recipientID})

	if filter.UnreadOnly {
		queryBuilder = queryBuilder.Where(sq.Eq{"read": false})
	}
	if filter.ActionRequiredOnly {
		queryBuilder = queryBuilder.Where(sq.Eq{"action_required": true})
	}

	query, args, err := queryBuilder.OrderBy("created_at DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
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
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return notifications, nil
}

func (r *NotificationRepo) CountUnread(ctx context.Context, recipientID uuid.UUID) (int, error) {
	const op = "repository.notification_repository.CountUnread"

	query, args, err := r.sb.Select("COUNT(*)").
		From("notifications").
		Where(sq.Eq{"recipient_id": recipientID, "read": false}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	var count int
	err = r.db.QueryRow(ctx, query, args...).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return count, nil
}

// MarkRead отмечает одно уведомление прочитанным. Открытые заявки на
// модерацию так не закрываются: их закрывает решение модератора.
func (r *NotificationRepo) MarkRead(ctx context.Context, id uuid.UUID) error {
	const op = "repository.notification_repository.MarkRead"

	query, args, err := r.sb.Update("notifications").
		Set("read", true).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotificationNotFound)
	}

	return nil
}

// Resolve закрывает заявку вручную: снимает action_required и отмечает
// уведомление прочитанным, возвращая обновленную запись
func (r *NotificationRepo) Resolve(ctx context.Context, id uuid.UUID) (models.Notification, error) {
	const op = "repository.notification_repository.Resolve"

	query, args, err := r.sb.Update("notifications").
		Set("action_required", false).
		Set("read", true).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING id, type, recipient_id, related_id, action_required, read, title, message, created_at").
		ToSql()
	if err != nil {
		return models.Notification{}, fmt.Errorf("%s: %w", op, err)
	}

	var n models.Notification
	err = r.db.QueryRow(ctx, query, args...).Scan(
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
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Notification{}, fmt.Errorf("%s: %w", op, storage.ErrNotificationNotFound)
		}
		return models.Notification{}, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}

func (r *NotificationRepo) MarkAllRead(ctx context.Context, recipientID uuid.UUID) error {
	const op = "repository.notification_repository.MarkAllRead"

	query, args, err := r.sb.Update("notifications").
		Set("read", true).
		Where(sq.Eq{"recipient_id": recipientID, "read": false, "action_required": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	_, err = r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
