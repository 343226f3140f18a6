package services

import (
	"context"
	"errors"
	"time"

	"photo_vitrine/internal/domain/models"
	libjwt "photo_vitrine/internal/lib/jwt"
	"photo_vitrine/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidTokenClaims = errors.New("invalid token claims")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenNotInStorage  = errors.New("token not found in storage")
)

const (
	AccessTokenExpire  = 15 * time.Minute
	RefreshTokenExpire = 7 * 24 * time.Hour
)

type TokenService struct {
	repo   repository.TokenRepository
	secret string
}

func NewTokenService(repo repository.TokenRepository, secret string) *TokenService {
	return &TokenService{repo: repo, secret: secret}
}

func (s *TokenService) GenerateTokens(user models.User) (*models.TokenPair, error) {
	accessToken, err := libjwt.NewToken(user, s.secret, AccessTokenExpire)
	if err != nil {
		return nil, err
	}

	refreshToken, err := libjwt.NewToken(user, s.secret, RefreshTokenExpire)
	if err != nil {
		return nil, err
	}

	err = s.repo.SaveRefreshToken(context.Background(), user.ID.String(), refreshToken, RefreshTokenExpire)
	if err != nil {
		return nil, err
	}

	return &models.TokenPair{
		UserID:       user.ID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// RefreshTokens меняет refresh токен на новую пару. Старый токен
// одноразовый: после обмена он удаляется из хранилища.
func (s *TokenService) RefreshTokens(refreshToken string) (*models.TokenPair, error) {
	token, _, err := new(jwt.Parser).ParseUnverified(refreshToken, jwt.MapClaims{})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	userID, ok := claims["uid"].(string)
	if !ok {
		return nil, ErrInvalidTokenClaims
	}

	exists, err := s.repo.GetRefreshToken(context.Background(), userID, refreshToken)
	if err != nil || !exists {
		return nil, ErrInvalidToken
	}

	if err := s.repo.DeleteRefreshToken(context.Background(), userID, refreshToken); err != nil {
		return nil, err
	}

	user := models.User{
		ID: uuid.MustParse(userID),
	}
	if email, ok := claims["email"].(string); ok {
		user.Email = email
	}
	if isAdmin, ok := claims["is_admin"].(bool); ok {
		user.IsAdmin = isAdmin
	}

	return s.GenerateTokens(user)
}

// Logout отзывает все refresh токены пользователя
func (s *TokenService) Logout(ctx context.Context, userID uuid.UUID) error {
	return s.repo.DeleteAllUserTokens(ctx, userID.String())
}
