package coordination

import "time"

// Coordination groups collaborators under at most one coordinator. Only
// active coordinations count toward a coordinator's authority.
type Coordination struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	CoordinatorEmail *string   `json:"coordinatorEmail,omitempty"`
	CoordinatorName  *string   `json:"coordinatorName,omitempty"`
	Active           bool      `json:"active"`
	CreatedAt        time.Time `json:"createdAt"`
}

// Member links a collaborator to a coordination, with the name cached
// for listing without a join.
type Member struct {
	CoordinationID string `json:"coordinationId"`
	UserEmail      string `json:"userEmail"`
	UserName       string `json:"userName"`
}
