package services

import (
	"context"
	"fmt"
	"log/slog"

	"photo_vitrine/internal/domain/models"
	"photo_vitrine/internal/lib/logger/sl"
	"photo_vitrine/internal/repository"
	"photo_vitrine/internal/transport/http/dto"

	"github.com/google/uuid"
)

// NotificationService — читающая сторона лент уведомлений.
// Записи создаёт workflow, здесь только выборка и отметки о прочтении.
type NotificationService struct {
	log  *slog.Logger
	repo repository.NotificationReadRepository
}

func NewNotificationService(log *slog.Logger, repo repository.NotificationReadRepository) *NotificationService {
	return &NotificationService{log: log, repo: repo}
}

// Feed возвращает ленту уведомлений получателя вместе со счётчиком непрочитанных
func (s *NotificationService) Feed(ctx context.Context, recipientID uuid.UUID, unreadOnly bool) (*dto.NotificationFeedResponse, error) {
	const op = "notification_service.Feed"
	log := s.log.With(
		slog.String("op", op),
		slog.String("recipient_id", recipientID.String()),
	)

	notifications, err := s.repo.ListByRecipient(ctx, recipientID, models.NotificationFilter{UnreadOnly: unreadOnly})
	if err != nil {
		log.Error("failed to list notifications", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	unread, err := s.repo.CountUnread(ctx, recipientID)
	if err != nil {
		log.Error("failed to count unread notifications", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	feed := &dto.NotificationFeedResponse{
		Notifications: make([]dto.NotificationResponse, 0, len(notifications)),
		UnreadCount:   unread,
	}
	for _, n := range notifications {
		feed.Notifications = append(feed.Notifications, dto.ToNotificationResponse(n))
	}

	log.Info("notification feed built", slog.Int("count", len(notifications)), slog.Int("unread", unread))
	return feed, nil
}

// StaffInbox возвращает открытые заявки на модерацию из общего ящика персонала
func (s *NotificationService) StaffInbox(ctx context.Context) ([]dto.NotificationResponse, error) {
	const op = "notification_service.StaffInbox"
	log := s.log.With(slog.String("op", op))

	notifications, err := s.repo.ListByRecipient(ctx, models.StaffInboxID, models.NotificationFilter{ActionRequiredOnly: true})
	if err != nil {
		log.Error("failed to list staff inbox", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, dto.ToNotificationResponse(n))
	}

	log.Info("staff inbox listed", slog.Int("open_requests", len(out)))
	return out, nil
}

// UnreadCount возвращает число непрочитанных уведомлений получателя
func (s *NotificationService) UnreadCount(ctx context.Context, recipientID uuid.UUID) (int, error) {
	const op = "notification_service.UnreadCount"

	count, err := s.repo.CountUnread(ctx, recipientID)
	if err != nil {
		s.log.Error("failed to count unread notifications",
			slog.String("op", op),
			slog.String("recipient_id", recipientID.String()),
			sl.Err(err),
		)
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return count, nil
}

// MarkRead отмечает уведомление прочитанным. Открытая заявка остаётся
// в ящике модераторов: её закрывает только решение модератора.
func (s *NotificationService) MarkRead(ctx context.Context, notificationID uuid.UUID) error {
	const op = "notification_service.MarkRead"
	log := s.log.With(
		slog.String("op", op),
		slog.String("notification_id", notificationID.String()),
	)

	if err := s.repo.MarkRead(ctx, notificationID); err != nil {
		log.Error("failed to mark notification read", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("notification marked read")
	return nil
}

// MarkResolved вручную закрывает заявку, не вынося решения по галерее.
// Ящик модераторов больше её не показывает, статус галереи не меняется.
func (s *NotificationService) MarkResolved(ctx context.Context, notificationID uuid.UUID) (*dto.NotificationResponse, error) {
	const op = "notification_service.MarkResolved"
	log := s.log.With(
		slog.String("op", op),
		slog.String("notification_id", notificationID.String()),
	)

	resolved, err := s.repo.Resolve(ctx, notificationID)
	if err != nil {
		log.Error("failed to resolve notification", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("notification resolved")
	out := dto.ToNotificationResponse(resolved)
	return &out, nil
}

// MarkAllRead отмечает прочитанными все уведомления получателя,
// кроме открытых заявок
func (s *NotificationService) MarkAllRead(ctx context.Context, recipientID uuid.UUID) error {
	const op = "notification_service.MarkAllRead"
	log := s.log.With(
		slog.String("op", op),
		slog.String("recipient_id", recipientID.String()),
	)

	if err := s.repo.MarkAllRead(ctx, recipientID); err != nil {
		log.Error("failed to mark notifications read", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("all notifications marked read")
	return nil
}
