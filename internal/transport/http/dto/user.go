package dto

import (
	"photo_vitrine/internal/domain/models"
)

// UserRegisterInput содержит данные для регистрации пользователя
type UserRegisterInput struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,e164"` // Формат +71234567890
	Password string `json:"password" validate:"required,min=8,max=64"`
}

func (input UserRegisterInput) ToDomain(passwordHash []byte) *models.User {
	return &models.User{
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Password: passwordHash,
	}
}

type UserResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	IsAdmin bool   `json:"is_admin"`
}

func ToUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:      u.ID.String(),
		Name:    u.Name,
		Email:   u.Email,
		Phone:   u.Phone,
		IsAdmin: u.IsAdmin,
	}
}
