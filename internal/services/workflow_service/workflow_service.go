package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"photo_vitrine/internal/domain/models"
	"photo_vitrine/internal/lib/logger/sl"
	"photo_vitrine/internal/metrics"
	"photo_vitrine/internal/storage"

	"github.com/google/uuid"
)

// CollectionStore — коллаборатор-хранилище двух именованных коллекций.
// Транзакции между коллекциями отсутствуют, атомарна только запись одной
// коллекции. Каждый вызов workflow перечитывает снимки заново.
type CollectionStore interface {
	LoadGalleries(ctx context.Context) ([]models.Gallery, error)
	SaveGalleries(ctx context.Context, galleries []models.Gallery) error
	LoadNotifications(ctx context.Context) ([]models.Notification, error)
	SaveNotifications(ctx context.Context, notifications []models.Notification) error
}

// HomepageCache сбрасывается после действий модерации, меняющих главную
type HomepageCache interface {
	Reset()
}

// WorkflowService — единая точка входа модерационного workflow. Каждый
// вызов: загрузка обеих коллекций, переход статуса, синхронизация
// уведомлений, запись галерей и только затем уведомлений. Отказ после
// записи галерей оставляет разрыв между коллекциями — это принятая цена
// отсутствия межколлекционных транзакций, компенсации не выполняются.
type WorkflowService struct {
	log   *slog.Logger
	store CollectionStore
	home  HomepageCache
}

func NewWorkflowService(log *slog.Logger, store CollectionStore, home HomepageCache) *WorkflowService {
	return &WorkflowService{
		log:   log,
		store: store,
		home:  home,
	}
}

// SubmitForReview переводит галерею draft → pending и кладет заявку в ящик
// модераторов. Повторный вызов для уже ожидающей галереи идемпотентен.
func (s *WorkflowService) SubmitForReview(ctx context.Context, galleryID uuid.UUID, actor models.Actor) (models.Gallery, error) {
	const op = "workflow_service.SubmitForReview"

	log := s.log.With(
		slog.String("op", op),
		slog.String("gallery_id", galleryID.String()),
		slog.String("actor_id", actor.ID.String()),
	)

	log.Info("submitting gallery for review")

	galleries, notifications, err := s.loadCollections(ctx)
	if err != nil {
		log.Error("failed to load collections", sl.Err(err))
		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	idx := findGallery(galleries, galleryID)
	if idx < 0 {
		log.Warn("gallery not found")
		return models.Gallery{}, fmt.Errorf("%s: %w", op, storage.ErrGalleryNotFound)
	}

	if err := checkOwnership(galleries[idx], actor); err != nil {
		log.Warn("submit refused", sl.Err(err))
		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now().UTC()

	if err := applySubmit(&galleries[idx], now); err != nil {
		metrics.GalleryTransitionsTotal.WithLabelValues("submit", "invalid").Inc()
		log.Warn("transition refused", slog.String("status", string(galleries[idx].Status)))
		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	before := len(notifications)
	notifications = syncOnSubmit(notifications, galleries[idx], now)

	if err := s.saveCollections(ctx, galleries, notifications); err != nil {
		log.Error("failed to persist collections", sl.Err(err))
		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	metrics.GalleryTransitionsTotal.WithLabelValues("submit", "ok").Inc()
	countEmitted(notifications, before)
	log.Info("gallery submitted", slog.String("status", string(galleries[idx].Status)))

	return galleries[idx], nil
}

// Moderate применяет решение модератора к ожидающей (или повторно — к уже
// рассмотренной) галерее, закрывает открытую заявку и уведомляет автора
func (s *WorkflowService) Moderate(ctx context.Context, galleryID uuid.UUID, decision Decision, actor models.Actor) (models.Gallery, error) {
	const op = "workflow_service.Moderate"

	log := s.log.With(
		slog.String("op", op),
		slog.String("gallery_id", galleryID.String()),
		slog.String("decision", string(decision)),
		slog.String("moderator_id", actor.ID.String()),
	)

	log.Info("moderating gallery")

	galleries, notifications, err := s.loadCollections(ctx)
	if err != nil {
		log.Error("failed to load collections", sl.Err(err))
		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	idx := findGallery(galleries, galleryID)
	if idx < 0 {
		log.Warn("gallery not found")
		return models.Gallery{}, fmt.Errorf("%s: %w", op, storage.ErrGalleryNotFound)
	}

	now := time.Now().UTC()

	if err := applyModeration(&galleries[idx], decision, actor, now); err != nil {
		metrics.GalleryTransitionsTotal.WithLabelValues(string(decision), "invalid").Inc()
		log.Warn("transition refused", slog.String("status", string(galleries[idx].Status)))
		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	// Сначала закрывается входящая заявка, затем создается исходящее
	// уведомление: две открытые заявки по одной галерее недопустимы.
	before := len(notifications)
	notifications = syncOnModerate(notifications, galleries[idx], decision, now)

	if err := s.saveCollections(ctx, galleries, notifications); err != nil {
		log.Error("failed to persist collections", sl.Err(err))
		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	metrics.GalleryTransitionsTotal.WithLabelValues(string(decision), "ok").Inc()
	countEmitted(notifications, before)
	s.resetHomepage()
	log.Info("gallery moderated", slog.String("status", string(galleries[idx].Status)))

	return galleries[idx], nil
}

// SetHomepageVisibility управляет размещением одобренной галереи на
// главной. Одобрение и размещение — разные действия: первое подтверждает
// качество, второе остается за редакцией.
func (s *WorkflowService) SetHomepageVisibility(ctx context.Context, galleryID uuid.UUID, visible bool, actor models.Actor) (models.Gallery, error) {
	const op = "workflow_service.SetHomepageVisibility"

	log := s.log.With(
		slog.String("op", op),
		slog.String("gallery_id", galleryID.String()),
		slog.Bool("visible", visible),
	)

	log.Info("changing homepage visibility")

	galleries, err := s.store.LoadGalleries(ctx)
	if err != nil {
		log.Error("failed to load galleries", sl.Err(err))
		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	idx := findGallery(galleries, galleryID)
	if idx < 0 {
		log.Warn("gallery not found")
		return models.Gallery{}, fmt.Errorf("%s: %w", op, storage.ErrGalleryNotFound)
	}

	if err := applyVisibility(&galleries[idx], visible); err != nil {
		metrics.GalleryTransitionsTotal.WithLabelValues("set_visibility", "invalid").Inc()
		log.Warn("transition refused", slog.String("status", string(galleries[idx].Status)))
		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	// Видимость не трогает уведомления, пишется только коллекция галерей
	if err := s.store.SaveGalleries(ctx, galleries); err != nil {
		log.Error("failed to persist galleries", sl.Err(err))
		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	metrics.GalleryTransitionsTotal.WithLabelValues("set_visibility", "ok").Inc()
	s.resetHomepage()
	log.Info("homepage visibility changed")

	return galleries[idx], nil
}

// AcknowledgeQueue снимает маркер "новая заявка" со всех ожидающих галерей
// и возвращает число затронутых. Это подтверждение уровня сессии ("я
// посмотрел очередь"), не пер-элементная отметка о прочтении; повторный
// вызов ничего не меняет.
func (s *WorkflowService) AcknowledgeQueue(ctx context.Context, actor models.Actor) (int, error) {
	const op = "workflow_service.AcknowledgeQueue"

	log := s.log.With(
		slog.String("op", op),
		slog.String("actor_id", actor.ID.String()),
	)

	log.Info("acknowledging moderation queue")

	galleries, err := s.store.LoadGalleries(ctx)
	if err != nil {
		log.Error("failed to load galleries", sl.Err(err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	count := 0
	for i := range galleries {
		if galleries[i].Status == models.GalleryStatusPending && galleries[i].IsNotified {
			galleries[i].IsNotified = false
			count++
		}
	}

	if count == 0 {
		log.Info("queue already acknowledged")
		return 0, nil
	}

	if err := s.store.SaveGalleries(ctx, galleries); err != nil {
		log.Error("failed to persist galleries", sl.Err(err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("queue acknowledged", slog.Int("count", count))

	return count, nil
}

// DeleteGallery безусловно удаляет галерею. Открытая заявка по ней
// закрывается в том же логическом действии, чтобы в ящике модераторов не
// оставалось заявок, указывающих на несуществующую запись.
func (s *WorkflowService) DeleteGallery(ctx context.Context, galleryID uuid.UUID, actor models.Actor) error {
	const op = "workflow_service.DeleteGallery"

	log := s.log.With(
		slog.String("op", op),
		slog.String("gallery_id", galleryID.String()),
		slog.String("actor_id", actor.ID.String()),
	)

	log.Info("deleting gallery")

	galleries, notifications, err := s.loadCollections(ctx)
	if err != nil {
		log.Error("failed to load collections", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	idx := findGallery(galleries, galleryID)
	if idx < 0 {
		log.Warn("gallery not found")
		return fmt.Errorf("%s: %w", op, storage.ErrGalleryNotFound)
	}

	if err := checkOwnership(galleries[idx], actor); err != nil {
		log.Warn("delete refused", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	galleries = append(galleries[:idx], galleries[idx+1:]...)
	notifications = resolveOpenRequest(notifications, galleryID)

	if err := s.saveCollections(ctx, galleries, notifications); err != nil {
		log.Error("failed to persist collections", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.resetHomepage()
	log.Info("gallery deleted")

	return nil
}

func (s *WorkflowService) loadCollections(ctx context.Context) ([]models.Gallery, []models.Notification, error) {
	galleries, err := s.store.LoadGalleries(ctx)
	if err != nil {
		return nil, nil, err
	}

	notifications, err := s.store.LoadNotifications(ctx)
	if err != nil {
		return nil, nil, err
	}

	return galleries, notifications, nil
}

// saveCollections пишет коллекции в фиксированном порядке: сначала
// галереи, затем уведомления. Отказ между записями оставляет галерею в
// новом статусе без парного уведомления — известный и задокументированный
// разрыв, который не маскируется откатом.
func (s *WorkflowService) saveCollections(ctx context.Context, galleries []models.Gallery, notifications []models.Notification) error {
	if err := s.store.SaveGalleries(ctx, galleries); err != nil {
		return err
	}

	if err := s.store.SaveNotifications(ctx, notifications); err != nil {
		if errors.Is(err, storage.ErrStoreUnavailable) {
			s.log.Error("notification write failed after gallery write, collections diverged", sl.Err(err))
		}
		return err
	}

	return nil
}

// countEmitted учитывает уведомления, дописанные синхронизацией в хвост
// коллекции. Вызывается только после успешной записи: неудачная попытка
// эмиссии в счетчик не попадает.
func countEmitted(notifications []models.Notification, before int) {
	for _, n := range notifications[before:] {
		metrics.NotificationsEmittedTotal.WithLabelValues(string(n.Type)).Inc()
	}
}

func (s *WorkflowService) resetHomepage() {
	if s.home != nil {
		s.home.Reset()
	}
}

func findGallery(galleries []models.Gallery, id uuid.UUID) int {
	for i := range galleries {
		if galleries[i].ID == id {
			return i
		}
	}
	return -1
}
