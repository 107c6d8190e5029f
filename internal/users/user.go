package users

import (
	"time"

	"ponto/internal/hierarchy"
)

// Status is the user lifecycle state.
type Status string

const (
	StatusPending  Status = "pending"
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Collaborator subtypes.
const (
	CollaboratorTeaching       = "teaching"
	CollaboratorAdministrative = "administrative"
)

// User is the identity and authorization record. Created on first
// successful sign-in with status pending; an administrator assigns
// levels and activates it.
type User struct {
	Email            string            `json:"email"`
	Name             string            `json:"name"`
	Levels           []hierarchy.Level `json:"niveis"`
	ActiveLevel      hierarchy.Level   `json:"nivelAtivo"`
	Status           Status            `json:"status"`
	CollaboratorType *string           `json:"tipoColaborador,omitempty"`
	WorkSchedule     *string           `json:"horarioTrabalho,omitempty"`
	CoordinationIDs  []string          `json:"coordenacoes,omitempty"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

// Employee converts to the minimal view the scope filter consumes.
func (u User) Employee() hierarchy.Employee {
	return hierarchy.Employee{Email: u.Email, CoordinationIDs: u.CoordinationIDs}
}
