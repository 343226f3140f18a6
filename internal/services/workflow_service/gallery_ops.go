package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"photo_vitrine/internal/domain/models"
	"photo_vitrine/internal/lib/logger/sl"
	"photo_vitrine/internal/storage"

	"github.com/google/uuid"
)

var (
	ErrNotOwner       = errors.New("actor is not the gallery owner")
	ErrInvalidGallery = errors.New("invalid gallery payload")
)

type CreateGalleryInput struct {
	Name        string
	Description string
	Images      []string
}

type EditGalleryInput struct {
	Name        string
	Description string
	Images      []string
}

// CreateGallery создает черновик галереи от имени автора. Галереи
// персонала сразу считаются одобренными: персонал не проходит
// собственную модерацию и уведомления по таким галереям не создаются.
func (s *WorkflowService) CreateGallery(ctx context.Context, input CreateGalleryInput, actor models.Actor) (models.Gallery, error) {
	const op = "workflow_service.CreateGallery"

	log := s.log.With(
		slog.String("op", op),
		slog.String("actor_id", actor.ID.String()),
		slog.String("name", input.Name),
	)

	log.Info("creating gallery")

	if input.Name == "" {
		return models.Gallery{}, fmt.Errorf("%s: %w: name is required", op, ErrInvalidGallery)
	}
	if len(input.Images) == 0 {
		return models.Gallery{}, fmt.Errorf("%s: %w: images are required", op, ErrInvalidGallery)
	}

	galleries, err := s.store.LoadGalleries(ctx)
	if err != nil {
		log.Error("failed to load galleries", sl.Err(err))
		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now().UTC()

	gallery := models.Gallery{
		ID:            uuid.New(),
		Name:          input.Name,
		Description:   input.Description,
		Images:        input.Images,
		SubmitterID:   actor.ID,
		SubmitterName: actor.Name,
		SubmitterRole: actor.Role,
		Status:        models.GalleryStatusDraft,
		CreatedAt:     now,
	}

	if actor.IsStaff() {
		moderator := actor.ID
		gallery.Status = models.GalleryStatusApproved
		gallery.ModeratedBy = &moderator
		gallery.ModeratedByName = actor.Name
		gallery.ModeratedAt = &now
	}

	galleries = append(galleries, gallery)

	if err := s.store.SaveGalleries(ctx, galleries); err != nil {
		log.Error("failed to persist galleries", sl.Err(err))
		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("gallery created",
		slog.String("gallery_id", gallery.ID.String()),
		slog.String("status", string(gallery.Status)),
	)

	return gallery, nil
}

// EditGallery обновляет содержимое галереи без смены статуса. Правка
// одобренной галереи не возвращает её на модерацию.
func (s *WorkflowService) EditGallery(ctx context.Context, galleryID uuid.UUID, input EditGalleryInput, actor models.Actor) (models.Gallery, error) {
	const op = "workflow_service.EditGallery"

	log := s.log.With(
		slog.String("op", op),
		slog.String("gallery_id", galleryID.String()),
		slog.String("actor_id", actor.ID.String()),
	)

	log.Info("editing gallery")

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

	if err := checkOwnership(galleries[idx], actor); err != nil {
		log.Warn("edit refused", sl.Err(err))
		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := applyEdit(&galleries[idx], input.Name, input.Description, input.Images); err != nil {
		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.store.SaveGalleries(ctx, galleries); err != nil {
		log.Error("failed to persist galleries", sl.Err(err))
		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	if galleries[idx].ShowOnHome {
		s.resetHomepage()
	}

	log.Info("gallery edited")

	return galleries[idx], nil
}

// checkOwnership: менять галерею может её автор или персонал
func checkOwnership(g models.Gallery, actor models.Actor) error {
	if actor.ID != g.SubmitterID && !actor.IsStaff() {
		return ErrNotOwner
	}
	return nil
}
