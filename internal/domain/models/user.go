package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID               uuid.UUID `db:"id" json:"id"`
	Name             string    `db:"name" json:"name"`
	Email            string    `db:"email" json:"email"`
	Phone            string    `db:"phone" json:"phone"`
	Password         []byte    `db:"password" json:"password"`
	IsAdmin          bool      `db:"is_admin" json:"is_admin"`
	RegistrationDate time.Time `db:"registration_date,omitempty" json:"registration_date,omitempty"`
	LastLogin        time.Time `db:"last_login,omitempty" json:"last_login,omitempty"`
}

// ToActor переводит пользователя в контекст действующего лица workflow
func (u User) ToActor() Actor {
	role := RoleSubmitter
	if u.IsAdmin {
		role = RoleStaff
	}
	return Actor{ID: u.ID, Name: u.Name, Role: role}
}
