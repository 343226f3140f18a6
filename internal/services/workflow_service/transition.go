package services

import (
	"errors"
	"time"

	"photo_vitrine/internal/domain/models"
)

var (
	ErrInvalidTransition = errors.New("invalid transition")
	ErrInvalidDecision   = errors.New("invalid moderation decision")
)

type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// applySubmit переводит галерею draft → pending и помечает её как новую
// заявку для очереди модерации. Повторный submit уже ожидающей галереи —
// no-op: заявка не дублируется.
func applySubmit(g *models.Gallery, now time.Time) error {
	switch g.Status {
	case models.GalleryStatusDraft:
		g.Status = models.GalleryStatusPending
		g.RequestedAt = &now
		g.IsNotified = true
		return nil
	case models.GalleryStatusPending:
		return nil
	default:
		return ErrInvalidTransition
	}
}

// applyModeration применяет решение модератора. approve разрешён из
// pending и rejected, reject — из pending и approved. Отклонение снимает
// галерею с главной страницы в том же переходе. approve намеренно НЕ
// включает показ на главной: это отдельное редакционное действие.
func applyModeration(g *models.Gallery, decision Decision, actor models.Actor, now time.Time) error {
	switch decision {
	case DecisionApprove:
		if g.Status != models.GalleryStatusPending && g.Status != models.GalleryStatusRejected {
			return ErrInvalidTransition
		}
		g.Status = models.GalleryStatusApproved
	case DecisionReject:
		if g.Status != models.GalleryStatusPending && g.Status != models.GalleryStatusApproved {
			return ErrInvalidTransition
		}
		g.Status = models.GalleryStatusRejected
		g.ShowOnHome = false
	default:
		return ErrInvalidDecision
	}

	moderator := actor.ID
	g.ModeratedBy = &moderator
	g.ModeratedByName = actor.Name
	g.ModeratedAt = &now

	return nil
}

// applyVisibility управляет размещением на главной. Действует только для
// approved галерей: показывать на главной можно лишь одобренный контент.
func applyVisibility(g *models.Gallery, visible bool) error {
	if g.Status != models.GalleryStatusApproved {
		return ErrInvalidTransition
	}
	g.ShowOnHome = visible
	return nil
}

// applyEdit обновляет содержимое галереи, не меняя её статус
func applyEdit(g *models.Gallery, name, description string, images []string) error {
	if name != "" {
		g.Name = name
	}
	g.Description = description
	if images != nil {
		g.Images = images
	}
	return nil
}
