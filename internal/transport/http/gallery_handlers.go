package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"photo_vitrine/internal/domain/models"
	"photo_vitrine/internal/lib/logger/sl"
	workflow "photo_vitrine/internal/services/workflow_service"
	"photo_vitrine/internal/storage"
	"photo_vitrine/internal/transport/http/dto"
	"photo_vitrine/internal/transport/http/dto/response"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// actor переводит ID пользователя из запроса в действующее лицо workflow
func (r *Routers) actor(c echo.Context, actorID uuid.UUID) (models.Actor, error) {
	return r.UserService.Actor(c.Request().Context(), actorID)
}

// workflowError переводит ошибки workflow в HTTP-ответ
func workflowError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, storage.ErrGalleryNotFound):
		return c.JSON(http.StatusNotFound, response.ErrorResponse{
			Status: "error",
			Error:  "gallery_not_found",
		})
	case errors.Is(err, workflow.ErrNotOwner):
		return c.JSON(http.StatusForbidden, response.ErrorResponse{
			Status: "error",
			Error:  "not_gallery_owner",
		})
	case errors.Is(err, workflow.ErrInvalidTransition), errors.Is(err, workflow.ErrInvalidDecision):
		return c.JSON(http.StatusConflict, response.ErrorResponse{
			Status:  "error",
			Error:   "invalid_transition",
			Details: err.Error(),
		})
	case errors.Is(err, workflow.ErrInvalidGallery):
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Status:  "error",
			Error:   "invalid_gallery",
			Details: err.Error(),
		})
	case errors.Is(err, storage.ErrStoreUnavailable):
		return c.JSON(http.StatusServiceUnavailable, response.ErrorResponse{
			Status: "error",
			Error:  "store_unavailable",
		})
	default:
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Status: "error",
			Error:  "internal_error",
		})
	}
}

// CreateGallery godoc
// @Summary Создать галерею
// @Description Создает новую галерею. Для фотографов галерея создается черновиком, галереи персонала публикуются сразу.
// @Tags galleries
// @Accept json
// @Produce json
// @Param request body dto.CreateGalleryRequest true "Данные галереи"
// @Success 201 {object} dto.GalleryResponse
// @Failure 400 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/galleries [post]
func (r *Routers) CreateGallery(c echo.Context) error {
	const op = "http.routers.CreateGallery"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.CreateGalleryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("invalid request data", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{Status: "error", Error: err.Error()})
	}

	actor, err := r.actor(c, req.ActorID)
	if err != nil {
		log.Error("failed to resolve actor", sl.Err(err))
		return c.JSON(http.StatusUnauthorized, response.ErrorResponse{Status: "error", Error: "unknown actor"})
	}

	gallery, err := r.WorkflowService.CreateGallery(c.Request().Context(), workflow.CreateGalleryInput{
		Name:        req.Name,
		Description: req.Description,
		Images:      req.Images,
	}, actor)
	if err != nil {
		log.Error("failed to create gallery", sl.Err(err))
		return workflowError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.ToGalleryResponse(gallery))
}

// UpdateGallery godoc
// @Summary Изменить галерею
// @Description Обновляет название, описание и изображения. Статус модерации при этом не меняется.
// @Tags galleries
// @Accept json
// @Produce json
// @Param id path string true "UUID галереи" format(uuid)
// @Param request body dto.UpdateGalleryRequest true "Новые данные"
// @Success 200 {object} dto.GalleryResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse "Не владелец галереи"
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/galleries/{id} [put]
func (r *Routers) UpdateGallery(c echo.Context) error {
	const op = "http.routers.UpdateGallery"

	log := r.log.With(
		slog.String("op", op),
	)

	galleryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		log.Error("invalid gallery id format", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid gallery ID format"})
	}

	var req dto.UpdateGalleryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("invalid request data", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{Status: "error", Error: err.Error()})
	}

	actor, err := r.actor(c, req.ActorID)
	if err != nil {
		log.Error("failed to resolve actor", sl.Err(err))
		return c.JSON(http.StatusUnauthorized, response.ErrorResponse{Status: "error", Error: "unknown actor"})
	}

	gallery, err := r.WorkflowService.EditGallery(c.Request().Context(), galleryID, workflow.EditGalleryInput{
		Name:        req.Name,
		Description: req.Description,
		Images:      req.Images,
	}, actor)
	if err != nil {
		log.Error("failed to edit gallery", sl.Err(err))
		return workflowError(c, err)
	}

	return c.JSON(http.StatusOK, dto.ToGalleryResponse(gallery))
}

// SubmitGallery godoc
// @Summary Отправить галерею на модерацию
// @Description Переводит черновик в pending и создает заявку в ящике модераторов. Повторная отправка pending-галереи не создает дубликата.
// @Tags galleries
// @Accept json
// @Produce json
// @Param id path string true "UUID галереи" format(uuid)
// @Param request body dto.ActorRequest true "Действующее лицо"
// @Success 200 {object} dto.GalleryResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse "Недопустимый переход статуса"
// @Security ApiKeyAuth
// @Router /api/v1/galleries/{id}/submit [post]
func (r *Routers) SubmitGallery(c echo.Context) error {
	const op = "http.routers.SubmitGallery"

	log := r.log.With(
		slog.String("op", op),
	)

	galleryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		log.Error("invalid gallery id format", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid gallery ID format"})
	}

	var req dto.ActorRequest
	if err := c.Bind(&req); err != nil {
		log.Error("invalid request data", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	actor, err := r.actor(c, req.ActorID)
	if err != nil {
		log.Error("failed to resolve actor", sl.Err(err))
		return c.JSON(http.StatusUnauthorized, response.ErrorResponse{Status: "error", Error: "unknown actor"})
	}

	gallery, err := r.WorkflowService.SubmitForReview(c.Request().Context(), galleryID, actor)
	if err != nil {
		log.Error("failed to submit gallery", sl.Err(err))
		return workflowError(c, err)
	}

	return c.JSON(http.StatusOK, dto.ToGalleryResponse(gallery))
}

// ModerateGallery godoc
// @Summary Вынести решение по галерее
// @Description Одобряет или отклоняет pending-галерею, закрывает заявку и уведомляет автора
// @Tags moderation
// @Accept json
// @Produce json
// @Param id path string true "UUID галереи" format(uuid)
// @Param request body dto.ModerateGalleryRequest true "Решение модератора"
// @Success 200 {object} dto.GalleryResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse "Галерея не находится на модерации"
// @Security ApiKeyAuth
// @Router /api/v1/galleries/{id}/moderate [patch]
func (r *Routers) ModerateGallery(c echo.Context) error {
	const op = "http.routers.ModerateGallery"

	log := r.log.With(
		slog.String("op", op),
	)

	galleryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		log.Error("invalid gallery id format", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid gallery ID format"})
	}

	var req dto.ModerateGalleryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("invalid request data", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{Status: "error", Error: err.Error()})
	}

	actor, err := r.actor(c, req.ActorID)
	if err != nil {
		log.Error("failed to resolve actor", sl.Err(err))
		return c.JSON(http.StatusUnauthorized, response.ErrorResponse{Status: "error", Error: "unknown actor"})
	}

	gallery, err := r.WorkflowService.Moderate(c.Request().Context(), galleryID, workflow.Decision(req.Decision), actor)
	if err != nil {
		log.Error("failed to moderate gallery", sl.Err(err))
		return workflowError(c, err)
	}

	return c.JSON(http.StatusOK, dto.ToGalleryResponse(gallery))
}

// SetGalleryVisibility godoc
// @Summary Управление размещением на главной
// @Description Включает или выключает показ одобренной галереи на главной странице
// @Tags moderation
// @Accept json
// @Produce json
// @Param id path string true "UUID галереи" format(uuid)
// @Param request body dto.HomepageVisibilityRequest true "Новое состояние"
// @Success 200 {object} dto.GalleryResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse "Галерея не одобрена"
// @Security ApiKeyAuth
// @Router /api/v1/galleries/{id}/visibility [patch]
func (r *Routers) SetGalleryVisibility(c echo.Context) error {
	const op = "http.routers.SetGalleryVisibility"

	log := r.log.With(
		slog.String("op", op),
	)

	galleryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		log.Error("invalid gallery id format", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid gallery ID format"})
	}

	var req dto.HomepageVisibilityRequest
	if err := c.Bind(&req); err != nil {
		log.Error("invalid request data", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	actor, err := r.actor(c, req.ActorID)
	if err != nil {
		log.Error("failed to resolve actor", sl.Err(err))
		return c.JSON(http.StatusUnauthorized, response.ErrorResponse{Status: "error", Error: "unknown actor"})
	}

	gallery, err := r.WorkflowService.SetHomepageVisibility(c.Request().Context(), galleryID, req.ShowOnHome, actor)
	if err != nil {
		log.Error("failed to change visibility", sl.Err(err))
		return workflowError(c, err)
	}

	return c.JSON(http.StatusOK, dto.ToGalleryResponse(gallery))
}

// AcknowledgeQueue godoc
// @Summary Отметить очередь модерации просмотренной
// @Description Снимает маркер "новая заявка" со всех pending-галерей
// @Tags moderation
// @Accept json
// @Produce json
// @Param request body dto.ActorRequest true "Действующее лицо"
// @Success 200 {object} response.Response{data=map[string]int}
// @Failure 401 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/moderation/acknowledge [post]
func (r *Routers) AcknowledgeQueue(c echo.Context) error {
	const op = "http.routers.AcknowledgeQueue"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.ActorRequest
	if err := c.Bind(&req); err != nil {
		log.Error("invalid request data", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	actor, err := r.actor(c, req.ActorID)
	if err != nil {
		log.Error("failed to resolve actor", sl.Err(err))
		return c.JSON(http.StatusUnauthorized, response.ErrorResponse{Status: "error", Error: "unknown actor"})
	}

	cleared, err := r.WorkflowService.AcknowledgeQueue(c.Request().Context(), actor)
	if err != nil {
		log.Error("failed to acknowledge queue", sl.Err(err))
		return workflowError(c, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(map[string]int{"cleared": cleared}))
}

// DeleteGallery godoc
// @Summary Удалить галерею
// @Description Удаляет галерею и закрывает связанную с ней заявку на модерацию
// @Tags galleries
// @Accept json
// @Param id path string true "UUID галереи" format(uuid)
// @Param request body dto.ActorRequest true "Действующее лицо"
// @Success 204
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/galleries/{id} [delete]
func (r *Routers) DeleteGallery(c echo.Context) error {
	const op = "http.routers.DeleteGallery"

	log := r.log.With(
		slog.String("op", op),
	)

	galleryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		log.Error("invalid gallery id format", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid gallery ID format"})
	}

	var req dto.ActorRequest
	if err := c.Bind(&req); err != nil {
		log.Error("invalid request data", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	actor, err := r.actor(c, req.ActorID)
	if err != nil {
		log.Error("failed to resolve actor", sl.Err(err))
		return c.JSON(http.StatusUnauthorized, response.ErrorResponse{Status: "error", Error: "unknown actor"})
	}

	if err := r.WorkflowService.DeleteGallery(c.Request().Context(), galleryID, actor); err != nil {
		log.Error("failed to delete gallery", sl.Err(err))
		return workflowError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// GetGallery godoc
// @Summary Получить галерею
// @Description Возвращает галерею по ID. Черновики видны только автору и персоналу.
// @Tags galleries
// @Produce json
// @Param id path string true "UUID галереи" format(uuid)
// @Param actor_id query string false "UUID запрашивающего пользователя" format(uuid)
// @Success 200 {object} dto.GalleryResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/galleries/{id} [get]
func (r *Routers) GetGallery(c echo.Context) error {
	const op = "http.routers.GetGallery"

	log := r.log.With(
		slog.String("op", op),
	)

	galleryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		log.Error("invalid gallery id format", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid gallery ID format"})
	}

	// анонимный запрос получает нулевого actor и видит только
	// прошедшие модерацию галереи
	var actor models.Actor
	if actorIDStr := c.QueryParam("actor_id"); actorIDStr != "" {
		actorID, err := uuid.Parse(actorIDStr)
		if err != nil {
			log.Error("invalid actor id format", sl.Err(err))
			return c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid actor ID format"})
		}
		actor, err = r.actor(c, actorID)
		if err != nil {
			log.Error("failed to resolve actor", sl.Err(err))
			return c.JSON(http.StatusUnauthorized, response.ErrorResponse{Status: "error", Error: "unknown actor"})
		}
	}

	gallery, err := r.GalleryService.GetGalleryByID(c.Request().Context(), galleryID, actor)
	if err != nil {
		log.Error("failed to get gallery", sl.Err(err))
		return workflowError(c, err)
	}

	return c.JSON(http.StatusOK, gallery)
}

// ListGalleries godoc
// @Summary Список галерей
// @Description Возвращает галереи с пагинацией и фильтром по статусу. status=pending дает очередь модерации.
// @Tags galleries
// @Produce json
// @Param status query string false "Фильтр по статусу (draft, pending, approved, rejected)"
// @Param page query int false "Номер страницы" default(1)
// @Param per_page query int false "Количество элементов на странице" default(10)
// @Success 200 {object} dto.GalleryListResponse
// @Failure 500 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/galleries [get]
func (r *Routers) ListGalleries(c echo.Context) error {
	const op = "http.routers.ListGalleries"

	log := r.log.With(
		slog.String("op", op),
	)

	status := c.QueryParam("status")

	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		page = 1
	}

	perPage, err := strconv.Atoi(c.QueryParam("per_page"))
	if err != nil || perPage < 1 || perPage > 100 {
		perPage = 10
	}

	galleries, err := r.GalleryService.ListGalleries(c.Request().Context(), status, page, perPage)
	if err != nil {
		log.Error("failed to list galleries", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "failed to list galleries"})
	}

	return c.JSON(http.StatusOK, galleries)
}

// MyGalleries godoc
// @Summary Галереи пользователя
// @Description Возвращает все галереи автора, включая черновики
// @Tags galleries
// @Produce json
// @Param user_id path string true "UUID автора" format(uuid)
// @Success 200 {object} response.Response{data=[]dto.GalleryResponse}
// @Failure 400 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/users/{user_id}/galleries [get]
func (r *Routers) MyGalleries(c echo.Context) error {
	const op = "http.routers.MyGalleries"

	log := r.log.With(
		slog.String("op", op),
	)

	submitterID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		log.Error("error parse uuid", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid user ID format"})
	}

	galleries, err := r.GalleryService.MyGalleries(c.Request().Context(), submitterID)
	if err != nil {
		log.Error("failed to list user galleries", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "failed to list galleries"})
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(galleries))
}

// Homepage godoc
// @Summary Главная страница
// @Description Возвращает одобренные галереи, размещенные на главной странице
// @Tags galleries
// @Produce json
// @Success 200 {object} response.Response{data=[]dto.GalleryResponse}
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/home [get]
func (r *Routers) Homepage(c echo.Context) error {
	const op = "http.routers.Homepage"

	log := r.log.With(
		slog.String("op", op),
	)

	galleries, err := r.GalleryService.Homepage(c.Request().Context())
	if err != nil {
		log.Error("failed to build homepage", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "failed to build homepage"})
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(galleries))
}

// GalleryCategories godoc
// @Summary Категории галерей
// @Description Возвращает сводку категорий опубликованных галерей
// @Tags galleries
// @Produce json
// @Success 200 {object} response.Response{data=[]dto.GalleryNameResponse}
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/galleries/categories [get]
func (r *Routers) GalleryCategories(c echo.Context) error {
	const op = "http.routers.GalleryCategories"

	log := r.log.With(
		slog.String("op", op),
	)

	categories, err := r.GalleryService.Categories(c.Request().Context())
	if err != nil {
		log.Error("failed to list categories", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "failed to list categories"})
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(categories))
}

// BrowseGalleries godoc
// @Summary Галереи по категориям
// @Description Возвращает опубликованные галереи указанных категорий. http://localhost:8080/api/v1/galleries/browse?names=Street,Portraits
// @Tags galleries
// @Produce json
// @Param names query string true "Список категорий через запятую"
// @Success 200 {object} response.Response{data=[]dto.GalleryResponse}
// @Failure 400 {object} response.ErrorResponse
// @Router /api/v1/galleries/browse [get]
func (r *Routers) BrowseGalleries(c echo.Context) error {
	const op = "http.routers.BrowseGalleries"

	log := r.log.With(
		slog.String("op", op),
	)

	namesParam := c.QueryParam("names")
	if namesParam == "" {
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "names query parameter is required"})
	}

	names := strings.Split(namesParam, ",")
	for i := range names {
		names[i] = strings.TrimSpace(names[i])
	}

	galleries, err := r.GalleryService.GalleriesByNames(c.Request().Context(), names)
	if err != nil {
		log.Error("failed to browse galleries", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "failed to browse galleries"})
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(galleries))
}

// NotificationFeed godoc
// @Summary Лента уведомлений
// @Description Возвращает уведомления получателя со счетчиком непрочитанных
// @Tags notifications
// @Produce json
// @Param user_id path string true "UUID получателя" format(uuid)
// @Param unread query bool false "Только непрочитанные"
// @Success 200 {object} dto.NotificationFeedResponse
// @Failure 400 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/users/{user_id}/notifications [get]
func (r *Routers) NotificationFeed(c echo.Context) error {
	const op = "http.routers.NotificationFeed"

	log := r.log.With(
		slog.String("op", op),
	)

	recipientID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		log.Error("error parse uuid", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid user ID format"})
	}

	unreadOnly := c.QueryParam("unread") == "true"

	feed, err := r.NotificationService.Feed(c.Request().Context(), recipientID, unreadOnly)
	if err != nil {
		log.Error("failed to build feed", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "failed to build feed"})
	}

	return c.JSON(http.StatusOK, feed)
}

// StaffInbox godoc
// @Summary Ящик модераторов
// @Description Возвращает открытые заявки на модерацию
// @Tags moderation
// @Produce json
// @Success 200 {object} response.Response{data=[]dto.NotificationResponse}
// @Failure 500 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/moderation/inbox [get]
func (r *Routers) StaffInbox(c echo.Context) error {
	const op = "http.routers.StaffInbox"

	log := r.log.With(
		slog.String("op", op),
	)

	inbox, err := r.NotificationService.StaffInbox(c.Request().Context())
	if err != nil {
		log.Error("failed to list staff inbox", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "failed to list inbox"})
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(inbox))
}

// MarkNotificationRead godoc
// @Summary Отметить уведомление прочитанным
// @Tags notifications
// @Param id path string true "UUID уведомления" format(uuid)
// @Success 204
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/notifications/{id}/read [patch]
func (r *Routers) MarkNotificationRead(c echo.Context) error {
	const op = "http.routers.MarkNotificationRead"

	log := r.log.With(
		slog.String("op", op),
	)

	notificationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		log.Error("error parse uuid", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid notification ID format"})
	}

	if err := r.NotificationService.MarkRead(c.Request().Context(), notificationID); err != nil {
		if errors.Is(err, storage.ErrNotificationNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrorResponse{Error: "notification not found"})
		}
		log.Error("failed to mark notification read", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "failed to mark read"})
	}

	return c.NoContent(http.StatusNoContent)
}

// ResolveNotification godoc
// @Summary Закрыть заявку вручную
// @Description Снимает заявку с очереди модерации без вынесения решения по галерее
// @Tags moderation
// @Produce json
// @Param id path string true "UUID уведомления" format(uuid)
// @Success 200 {object} dto.NotificationResponse
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/moderation/notifications/{id}/resolve [patch]
func (r *Routers) ResolveNotification(c echo.Context) error {
	const op = "http.routers.ResolveNotification"

	log := r.log.With(
		slog.String("op", op),
	)

	notificationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		log.Error("error parse uuid", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid notification ID format"})
	}

	resolved, err := r.NotificationService.MarkResolved(c.Request().Context(), notificationID)
	if err != nil {
		if errors.Is(err, storage.ErrNotificationNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrorResponse{Error: "notification not found"})
		}
		log.Error("failed to resolve notification", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "failed to resolve notification"})
	}

	return c.JSON(http.StatusOK, resolved)
}

// MarkAllNotificationsRead godoc
// @Summary Отметить все уведомления прочитанными
// @Description Отмечает прочитанными все уведомления получателя, кроме открытых заявок
// @Tags notifications
// @Param user_id path string true "UUID получателя" format(uuid)
// @Success 204
// @Failure 400 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/users/{user_id}/notifications/read-all [post]
func (r *Routers) MarkAllNotificationsRead(c echo.Context) error {
	const op = "http.routers.MarkAllNotificationsRead"

	log := r.log.With(
		slog.String("op", op),
	)

	recipientID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		log.Error("error parse uuid", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid user ID format"})
	}

	if err := r.NotificationService.MarkAllRead(c.Request().Context(), recipientID); err != nil {
		log.Error("failed to mark notifications read", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "failed to mark read"})
	}

	return c.NoContent(http.StatusNoContent)
}
