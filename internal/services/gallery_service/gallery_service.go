package services

import (
	"context"
	"fmt"
	"log/slog"

	"photo_vitrine/internal/domain/models"
	"photo_vitrine/internal/lib/logger/sl"
	"photo_vitrine/internal/repository"
	"photo_vitrine/internal/storage"
	"photo_vitrine/internal/transport/http/dto"

	"github.com/google/uuid"
)

// GalleryService — читающая сторона витрины. Все изменения статусов
// проходят через workflow, здесь только выборки и кэш главной страницы.
type GalleryService struct {
	log  *slog.Logger
	repo repository.GalleryReadRepository
	home *HomeCache
}

func NewGalleryService(log *slog.Logger, repo repository.GalleryReadRepository, home *HomeCache) *GalleryService {
	return &GalleryService{log: log, repo: repo, home: home}
}

// GetGalleryByID возвращает галерею с учётом видимости: черновики
// видят только автор и персонал
func (s *GalleryService) GetGalleryByID(ctx context.Context, id uuid.UUID, actor models.Actor) (*dto.GalleryResponse, error) {
	const op = "gallery_service.GetGalleryByID"
	log := s.log.With(
		slog.String("op", op),
		slog.String("gallery_id", id.String()),
	)

	gallery, err := s.repo.GetGalleryByID(ctx, id)
	if err != nil {
		log.Error("failed to get gallery", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if gallery.Status == models.GalleryStatusDraft && gallery.SubmitterID != actor.ID && !actor.IsStaff() {
		log.Warn("draft gallery requested by a stranger", slog.String("actor_id", actor.ID.String()))
		return nil, fmt.Errorf("%s: %w", op, storage.ErrGalleryNotFound)
	}

	resp := dto.ToGalleryResponse(gallery)
	return &resp, nil
}

// ListGalleries возвращает страницу галерей с фильтром по статусу.
// statusFilter "pending" даёт модераторам очередь заявок.
func (s *GalleryService) ListGalleries(ctx context.Context, statusFilter string, page, perPage int) (*dto.GalleryListResponse, error) {
	const op = "gallery_service.ListGalleries"
	log := s.log.With(
		slog.String("op", op),
		slog.String("status_filter", statusFilter),
		slog.Int("page", page),
		slog.Int("per_page", perPage),
	)

	// Пустой фильтр означает "все статусы": репозиторий принимает
	// только "all" либо конкретный статус.
	if statusFilter == "" {
		statusFilter = "all"
	}
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 10
	}

	galleries, total, err := s.repo.GetGalleries(ctx, statusFilter, page, perPage)
	if err != nil {
		log.Error("failed to list galleries", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp := &dto.GalleryListResponse{
		Galleries:  make([]dto.GalleryResponse, 0, len(galleries)),
		TotalCount: total,
		Page:       page,
		PerPage:    perPage,
	}
	for _, g := range galleries {
		resp.Galleries = append(resp.Galleries, dto.ToGalleryResponse(g))
	}

	log.Info("galleries listed", slog.Int("count", len(galleries)))
	return resp, nil
}

// MyGalleries возвращает все галереи автора, включая черновики
func (s *GalleryService) MyGalleries(ctx context.Context, submitterID uuid.UUID) ([]dto.GalleryResponse, error) {
	const op = "gallery_service.MyGalleries"
	log := s.log.With(
		slog.String("op", op),
		slog.String("submitter_id", submitterID.String()),
	)

	galleries, err := s.repo.GetGalleriesBySubmitter(ctx, submitterID)
	if err != nil {
		log.Error("failed to list submitter galleries", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]dto.GalleryResponse, 0, len(galleries))
	for _, g := range galleries {
		out = append(out, dto.ToGalleryResponse(g))
	}
	return out, nil
}

// Homepage возвращает витрину главной страницы: approved-галереи
// с включённым размещением. Результат кэшируется до ближайшего
// изменения видимости.
func (s *GalleryService) Homepage(ctx context.Context) ([]dto.GalleryResponse, error) {
	const op = "gallery_service.Homepage"
	log := s.log.With(slog.String("op", op))

	if s.home != nil {
		if cached, ok := s.home.Get(); ok {
			log.Debug("homepage served from cache", slog.Int("count", len(cached)))
			return cached, nil
		}
	}

	galleries, err := s.repo.GetHomepageGalleries(ctx)
	if err != nil {
		log.Error("failed to load homepage galleries", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]dto.GalleryResponse, 0, len(galleries))
	for _, g := range galleries {
		out = append(out, dto.ToGalleryResponse(g))
	}

	if s.home != nil {
		s.home.Set(out)
	}

	log.Info("homepage rebuilt", slog.Int("count", len(out)))
	return out, nil
}

// Categories возвращает сводку категорий опубликованных галерей
func (s *GalleryService) Categories(ctx context.Context) ([]dto.GalleryNameResponse, error) {
	const op = "gallery_service.Categories"
	log := s.log.With(slog.String("op", op))

	groups, err := s.repo.GetGalleryNames(ctx)
	if err != nil {
		log.Error("failed to group gallery names", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]dto.GalleryNameResponse, 0, len(groups))
	for _, g := range groups {
		out = append(out, dto.GalleryNameResponse{Name: g.Name, Count: g.Count})
	}
	return out, nil
}

// GalleriesByNames возвращает опубликованные галереи указанных категорий
func (s *GalleryService) GalleriesByNames(ctx context.Context, names []string) ([]dto.GalleryResponse, error) {
	const op = "gallery_service.GalleriesByNames"
	log := s.log.With(slog.String("op", op), slog.Int("names", len(names)))

	galleries, err := s.repo.GetGalleriesByNames(ctx, names)
	if err != nil {
		log.Error("failed to load galleries by names", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]dto.GalleryResponse, 0, len(galleries))
	for _, g := range galleries {
		out = append(out, dto.ToGalleryResponse(g))
	}
	return out, nil
}
