package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"photo_vitrine/internal/domain/models"
	"photo_vitrine/internal/lib/logger/sl"
	user "photo_vitrine/internal/services/user_service"
	workflow "photo_vitrine/internal/services/workflow_service"
	"photo_vitrine/internal/transport/http/dto"
	"photo_vitrine/internal/transport/http/dto/request"
	"photo_vitrine/internal/transport/http/dto/response"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	_ "photo_vitrine/docs"
)

type UserService interface {
	Login(ctx context.Context, identifier, password string) (*models.TokenPair, error)
	RegisterNewUser(ctx context.Context, input dto.UserRegisterInput) (uuid.UUID, error)
	IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
	GetUserById(ctx context.Context, userID uuid.UUID) (models.User, error)
	Actor(ctx context.Context, userID uuid.UUID) (models.Actor, error)
}

type AuthService interface {
	GenerateTokens(user models.User) (*models.TokenPair, error)
	RefreshTokens(refreshToken string) (*models.TokenPair, error)
	Logout(ctx context.Context, userID uuid.UUID) error
}

type MediaService interface {
	UploadMedia(ctx context.Context, input dto.MediaUploadInput) (*models.Media, error)
	ListUserImages(ctx context.Context, uploaderID uuid.UUID) ([]dto.MediaResponse, error)
	DeleteMedia(ctx context.Context, id uuid.UUID) error
}

type GalleryService interface {
	GetGalleryByID(ctx context.Context, id uuid.UUID, actor models.Actor) (*dto.GalleryResponse, error)
	ListGalleries(ctx context.Context, statusFilter string, page, perPage int) (*dto.GalleryListResponse, error)
	MyGalleries(ctx context.Context, submitterID uuid.UUID) ([]dto.GalleryResponse, error)
	Homepage(ctx context.Context) ([]dto.GalleryResponse, error)
	Categories(ctx context.Context) ([]dto.GalleryNameResponse, error)
	GalleriesByNames(ctx context.Context, names []string) ([]dto.GalleryResponse, error)
}

type NotificationService interface {
	Feed(ctx context.Context, recipientID uuid.UUID, unreadOnly bool) (*dto.NotificationFeedResponse, error)
	StaffInbox(ctx context.Context) ([]dto.NotificationResponse, error)
	UnreadCount(ctx context.Context, recipientID uuid.UUID) (int, error)
	MarkRead(ctx context.Context, notificationID uuid.UUID) error
	MarkResolved(ctx context.Context, notificationID uuid.UUID) (*dto.NotificationResponse, error)
	MarkAllRead(ctx context.Context, recipientID uuid.UUID) error
}

type WorkflowService interface {
	CreateGallery(ctx context.Context, input workflow.CreateGalleryInput, actor models.Actor) (models.Gallery, error)
	EditGallery(ctx context.Context, galleryID uuid.UUID, input workflow.EditGalleryInput, actor models.Actor) (models.Gallery, error)
	SubmitForReview(ctx context.Context, galleryID uuid.UUID, actor models.Actor) (models.Gallery, error)
	Moderate(ctx context.Context, galleryID uuid.UUID, decision workflow.Decision, actor models.Actor) (models.Gallery, error)
	SetHomepageVisibility(ctx context.Context, galleryID uuid.UUID, visible bool, actor models.Actor) (models.Gallery, error)
	AcknowledgeQueue(ctx context.Context, actor models.Actor) (int, error)
	DeleteGallery(ctx context.Context, galleryID uuid.UUID, actor models.Actor) error
}

type Routers struct {
	log                 *slog.Logger
	UserService         UserService
	AuthService         AuthService
	MediaService        MediaService
	GalleryService      GalleryService
	NotificationService NotificationService
	WorkflowService     WorkflowService
}

func NewRouter(
	log *slog.Logger,
	userService UserService,
	authService AuthService,
	mediaService MediaService,
	galleryService GalleryService,
	notificationService NotificationService,
	workflowService WorkflowService,
) *Routers {
	return &Routers{
		log:                 log,
		UserService:         userService,
		AuthService:         authService,
		MediaService:        mediaService,
		GalleryService:      galleryService,
		NotificationService: notificationService,
		WorkflowService:     workflowService,
	}
}


// Login godoc
// @Summary Аутентификация пользователя
// @Description Вход в систему по email или телефону. Возвращает пару JWT-токенов.
// @Tags users
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Данные для входа"
// @Success 200 {object} response.Response{data=map[string]string} "Успешный вход (токены)"
// @Failure 400 {object} response.ErrorResponse "Неверный формат запроса"
// @Failure 401 {object} response.ErrorResponse "Ошибка аутентификации"
// @Router /api/v1/login [post]
func (r *Routers) Login(c echo.Context) error {
	const op = "http.routers.Login"

	log := r.log.With(
		slog.String("op", op),
	)

	var req request.LoginRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Warn("invalid format request", slog.String("identifier", req.Identifier))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	token, err := r.UserService.Login(c.Request().Context(), req.Identifier, req.Password)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
	}

	sess, _ := session.Get("session", c)
	sess.Values["user_id"] = token.UserID.String()
	sess.Save(c.Request(), c.Response())

	return c.JSON(http.StatusOK, response.Response{
		Status: "success",
		Data:   map[string]string{"user_id": token.UserID.String(), "access_token": token.AccessToken, "refresh_token": token.RefreshToken},
	})
}

// Register godoc
// @Summary Регистрация нового пользователя
// @Description Создание аккаунта. Возвращает ID пользователя.
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.UserRegisterInput true "Данные для регистрации"
// @Success 201 {object} response.Response{data=object{user_id=string}} "Успешная регистрация"
// @Failure 400 {object} response.ErrorResponse "Неверный формат запроса"
// @Failure 409 {object} response.ErrorResponse "Пользователь уже существует"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/v1/register [post]
func (r *Routers) Register(c echo.Context) error {
	const op = "http.routers.Register"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.UserRegisterInput

	if err := c.Bind(&req); err != nil {
		log.Error("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRegisterRequest)
	}

	if err := c.Validate(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRegisterRequest)
	}

	userID, err := r.UserService.RegisterNewUser(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, user.ErrUserExist) {
			log.Warn("user already exists", slog.String("email", req.Email))
			return c.JSON(http.StatusConflict, response.ErrUserAlreadyExists)
		}

		log.Error("registration failed", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Status:  "error",
			Error:   "internal_error",
			Details: "Internal server error",
		})
	}

	log.Info("user registered successfully", slog.String("user_id", userID.String()))

	return c.JSON(http.StatusCreated, response.Response{
		Status: "success",
		Data: map[string]uuid.UUID{
			"user_id": userID,
		},
	})
}

func (r *Routers) Refresh(c echo.Context) error {
	const op = "http.routers.Refresh"

	log := r.log.With(
		slog.String("op", op),
	)

	var req struct {
		RefreshToken string `json:"refresh_token"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("validation bind", sl.Err(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}

	newTokens, err := r.AuthService.RefreshTokens(req.RefreshToken)
	if err != nil {
		log.Error("error refresh tokens", sl.Err(err))
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid refresh token")
	}

	return c.JSON(http.StatusOK, newTokens)
}

// Logout godoc
// @Summary Выход из системы
// @Description Отзывает все refresh-токены пользователя
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.ActorRequest true "ID пользователя"
// @Success 204
// @Failure 400 {object} response.ErrorResponse
// @Router /api/v1/logout [post]
func (r *Routers) Logout(c echo.Context) error {
	const op = "http.routers.Logout"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.ActorRequest
	if err := c.Bind(&req); err != nil {
		log.Error("validation bind", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := r.AuthService.Logout(c.Request().Context(), req.ActorID); err != nil {
		log.Error("failed to logout", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Status: "error",
			Error:  "logout_failed",
		})
	}

	sess, _ := session.Get("session", c)
	sess.Options.MaxAge = -1
	sess.Save(c.Request(), c.Response())

	return c.NoContent(http.StatusNoContent)
}

// IsAdminPermission
// @Summary Проверка административного статуса пользователя
// @Description Проверяет, является ли указанный пользователь администратором
// @Tags users
// @Accept  json
// @Produce  json
// @Param user_id path string true "UUID пользователя" format(uuid)
// @Success 200 {object} map[string]bool "Результат проверки" example({"is_admin": true})
// @Failure 400 {object} map[string]string "Невалидный UUID" example({"error": "invalid user ID format"})
// @Failure 500 {object} map[string]string "Ошибка сервера" example({"error": "failed to check admin status"})
// @Security ApiKeyAuth
// @Router /api/v1/users/{user_id}/is-admin [get]
func (r *Routers) IsAdminPermission(c echo.Context) error {
	const op = "http.routers.IsAdminPermission"

	log := r.log.With(
		slog.String("op", op),
	)

	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		log.Error("error parse uuid", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Error: "invalid user ID format",
		})
	}

	isAdmin, err := r.UserService.IsAdmin(c.Request().Context(), userID)
	if err != nil {
		log.Error("failed to check admin status",
			slog.String("error", err.Error()),
			slog.Any("user_id", userID),
		)
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Error: "failed to check admin status",
		})
	}

	return c.JSON(http.StatusOK, map[string]bool{
		"is_admin": isAdmin,
	})
}

// GetUserById godoc
// @Summary Получение информации о пользователе
// @Description Возвращает информацию о пользователе по его UUID
// @Tags users
// @Accept json
// @Produce json
// @Param user_id path string true "UUID пользователя" format(uuid)
// @Success 200 {object} dto.UserResponse "Данные пользователя"
// @Failure 400 {object} response.ErrorResponse "Некорректный UUID пользователя"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Security ApiKeyAuth
// @Router /api/v1/users/{user_id} [get]
func (r *Routers) GetUserById(c echo.Context) error {
	const op = "http.routers.GetUserById"

	log := r.log.With(
		slog.String("op", op),
	)

	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		log.Error("error parse uuid", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Error: "invalid user ID format",
		})
	}

	user, err := r.UserService.GetUserById(c.Request().Context(), userID)
	if err != nil {
		log.Error("error get user", sl.Err(err))
		return c.JSON(http.StatusNotFound, response.ErrorResponse{
			Error: "user not found",
		})
	}

	return c.JSON(http.StatusOK, dto.ToUserResponse(&user))
}

// UploadMedia godoc
// @Summary Загрузка изображения
// @Description Загружает файл изображения на сервер
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Файл для загрузки (макс. 10MB)"
// @Param uploader_id formData string true "UUID пользователя-загрузчика" format(uuid)
// @Param media_type formData string true "Тип контента" Enums(photo, cover)
// @Param width formData integer false "Ширина в пикселях"
// @Param height formData integer false "Высота в пикселях"
// @Success 201 {object} models.Media "Успешно загруженное изображение"
// @Failure 400 {object} response.ErrorResponse "Некорректные входные данные"
// @Failure 413 {object} response.ErrorResponse "Превышен максимальный размер файла"
// @Failure 415 {object} response.ErrorResponse "Неподдерживаемый тип файла"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /api/v1/media/upload [post]
func (r *Routers) UploadMedia(c echo.Context) error {
	const op = "http.routers.UploadMedia"

	log := r.log.With(
		slog.String("op", op),
	)

	startTime := time.Now()
	defer func() {
		log.Info("Request completed",
			"duration", time.Since(startTime))
	}()

	log.Info("Start uploading media",
		"method", c.Request().Method,
		"path", c.Path(),
		"client_ip", c.RealIP())

	file, err := c.FormFile("file")
	if err != nil {
		log.Warn("Empty file in request",
			"error", err.Error())
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "File is required"})
	}

	log.Debug("Got file for upload",
		"filename", file.Filename,
		"size", file.Size,
		"mime_type", file.Header.Get("Content-Type"))

	input, err := r.parseMediaUploadInput(c)
	if err != nil {
		log.Warn("Error parsing data",
			"error", err.Error(),
			"uploader_id", c.FormValue("uploader_id"))
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	input.File = file

	media, err := r.MediaService.UploadMedia(c.Request().Context(), *input)
	if err != nil {
		log.Error("Error upload media",
			"error", err.Error(),
			"uploader_id", input.UploaderID,
			"filename", file.Filename)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	log.Info("Upload successfull",
		"media_id", media.ID,
		"uploader_id", media.UploaderID,
		"file_size", media.FileSize,
		"duration", time.Since(startTime))

	return c.JSON(http.StatusCreated, media)
}

// ListUserImages godoc
// @Summary Изображения пользователя
// @Description Возвращает все изображения, загруженные пользователем
// @Tags media
// @Produce json
// @Param user_id path string true "UUID пользователя" format(uuid)
// @Success 200 {array} dto.MediaResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/users/{user_id}/media [get]
func (r *Routers) ListUserImages(c echo.Context) error {
	const op = "http.routers.ListUserImages"

	log := r.log.With(
		slog.String("op", op),
	)

	uploaderID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		log.Error("error parse uuid", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Error: "invalid user ID format",
		})
	}

	images, err := r.MediaService.ListUserImages(c.Request().Context(), uploaderID)
	if err != nil {
		log.Error("failed to list images", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Error: "failed to list images",
		})
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(images))
}

// DeleteMedia godoc
// @Summary Удаление изображения
// @Description Удаляет запись об изображении и сам файл
// @Tags media
// @Param id path string true "UUID изображения" format(uuid)
// @Success 204
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/media/{id} [delete]
func (r *Routers) DeleteMedia(c echo.Context) error {
	const op = "http.routers.DeleteMedia"

	log := r.log.With(
		slog.String("op", op),
	)

	mediaID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		log.Error("error parse uuid", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Error: "invalid media ID format",
		})
	}

	if err := r.MediaService.DeleteMedia(c.Request().Context(), mediaID); err != nil {
		log.Error("failed to delete media", sl.Err(err))
		return c.JSON(http.StatusNotFound, response.ErrorResponse{
			Error: "media not found",
		})
	}

	return c.NoContent(http.StatusNoContent)
}

func (r *Routers) parseMediaUploadInput(c echo.Context) (*dto.MediaUploadInput, error) {
	uploaderID, err := uuid.Parse(c.FormValue("uploader_id"))
	if err != nil {
		return nil, err
	}

	input := &dto.MediaUploadInput{
		UploaderID: uploaderID,
		MediaType:  c.FormValue("media_type"),
	}

	if widthStr := c.FormValue("width"); widthStr != "" {
		if width, err := strconv.Atoi(widthStr); err == nil {
			input.Width = &width
		}
	}
	if heightStr := c.FormValue("height"); heightStr != "" {
		if height, err := strconv.Atoi(heightStr); err == nil {
			input.Height = &height
		}
	}

	return input, nil
}
