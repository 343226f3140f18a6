package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"photo_vitrine/internal/domain/models"
	"photo_vitrine/internal/lib/logger/sl"
	"photo_vitrine/internal/repository"
	"photo_vitrine/internal/storage"
	"photo_vitrine/internal/transport/http/dto"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExist          = errors.New("user already exist")
	ErrUserNotFound       = errors.New("user not found")
)

// TokenIssuer выпускает пару токенов после успешной аутентификации
type TokenIssuer interface {
	GenerateTokens(user models.User) (*models.TokenPair, error)
}

type UserService struct {
	log    *slog.Logger
	repo   repository.UserRepository
	tokens TokenIssuer
}

func NewUserService(log *slog.Logger, repo repository.UserRepository, tokens TokenIssuer) *UserService {
	return &UserService{
		log:    log,
		repo:   repo,
		tokens: tokens,
	}
}

// Login аутентифицирует пользователя по email или телефону
func (s *UserService) Login(ctx context.Context, identifier, password string) (*models.TokenPair, error) {
	const op = "user_service.Login"

	log := s.log.With(
		slog.String("op", op),
		slog.String("identifier", identifier),
	)

	log.Info("attempting to login user")

	user, err := s.repo.UserByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			log.Warn("user not found", sl.Err(err))

			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		log.Error("failed to get user", sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword(user.Password, []byte(password)); err != nil {
		log.Info("invalid credentials", sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	pair, err := s.tokens.GenerateTokens(user)
	if err != nil {
		log.Error("failed to generate tokens", sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user logged in successfully")

	return pair, nil
}

func (s *UserService) RegisterNewUser(ctx context.Context, input dto.UserRegisterInput) (uuid.UUID, error) {
	const op = "user_service.RegisterNewUser"

	log := s.log.With(
		slog.String("op", op),
		slog.String("email", input.Email),
	)

	log.Info("register user")

	passHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("failed to generate password hash", sl.Err(err))

		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	user := models.User{
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Password: passHash,
	}

	id, err := s.repo.SaveUser(ctx, user)
	if err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			log.Warn("user already exist", slog.Any("error", err.Error()))

			return uuid.Nil, fmt.Errorf("%s: %w", op, ErrUserExist)
		}

		log.Error("failed to save user", sl.Err(err))

		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user registered")

	return id, nil
}

func (s *UserService) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	const op = "user_service.IsAdmin"

	log := s.log.With(
		slog.String("op", op),
		slog.String("user_id", userID.String()),
	)

	log.Info("checking if user is admin")

	isAdmin, err := s.repo.IsAdmin(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("checked if user is admin", slog.Bool("is_admin", isAdmin))

	return isAdmin, nil
}

func (s *UserService) GetUserById(ctx context.Context, userID uuid.UUID) (models.User, error) {
	const op = "user_service.GetUserById"

	user, err := s.repo.GetUserById(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return models.User{}, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

// Actor собирает контекст действующего лица для операций workflow
func (s *UserService) Actor(ctx context.Context, userID uuid.UUID) (models.Actor, error) {
	const op = "user_service.Actor"

	user, err := s.GetUserById(ctx, userID)
	if err != nil {
		return models.Actor{}, fmt.Errorf("%s: %w", op, err)
	}

	return user.ToActor(), nil
}
