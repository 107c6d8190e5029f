package absence

import "time"

// Reason categories, as submitted on the wire.
const (
	TipoFalta    = "falta"
	TipoAtestado = "atestado"
	TipoLicenca  = "licenca"
)

// Review statuses.
const (
	StatusPendente  = "pendente"
	StatusAprovada  = "aprovada"
	StatusRejeitada = "rejeitada"
)

// Absence is a claim that a user did not work a given day for a
// justified reason. Created by the collaborator; approved or rejected by
// a coordinator with scope over them, or an administrator.
type Absence struct {
	ID            string     `json:"id"`
	UserEmail     string     `json:"userEmail"`
	Day           string     `json:"date"` // YYYY-MM-DD
	Tipo          string     `json:"tipo"`
	Justificativa string     `json:"justificativa"`
	LinkDocumento *string    `json:"linkDocumento,omitempty"`
	Status        string     `json:"status"`
	Motivo        *string    `json:"motivo,omitempty"`
	SubmittedAt   time.Time  `json:"submittedAt"`
	ReviewedAt    *time.Time `json:"reviewedAt,omitempty"`
	ReviewedBy    *string    `json:"reviewedBy,omitempty"`
}

// ValidTipo reports whether the reason category is known.
func ValidTipo(tipo string) bool {
	switch tipo {
	case TipoFalta, TipoAtestado, TipoLicenca:
		return true
	}
	return false
}
