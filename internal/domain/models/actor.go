package models

import "github.com/google/uuid"

type ActorRole string

const (
	RoleSubmitter ActorRole = "submitter"
	RoleStaff     ActorRole = "staff"
)

// Actor — контекст действующего лица, передаваемый в каждый вызов workflow.
// Принадлежность к персоналу определяется ролью, а не сравнением ID.
type Actor struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Role ActorRole `json:"role"`
}

func (a Actor) IsStaff() bool {
	return a.Role == RoleStaff
}
