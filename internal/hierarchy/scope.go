package hierarchy

// ScopeKind describes how wide a caller's authority is.
type ScopeKind string

const (
	// ScopeAll grants visibility over every user and record.
	ScopeAll ScopeKind = "all"
	// ScopeCoordinations limits visibility to members of the listed
	// coordinations.
	ScopeCoordinations ScopeKind = "coordinations"
	// ScopeNoCoordinations is a coordinator with nothing assigned. It is
	// a valid scope, not an error: callers must be able to tell "no
	// access" apart from "not a coordinator".
	ScopeNoCoordinations ScopeKind = "no-coordinations"
	// ScopeSelf limits visibility to the caller's own records.
	ScopeSelf ScopeKind = "self"
)

// Scope is the resolved authority of one authenticated caller.
type Scope struct {
	Kind            ScopeKind
	CallerEmail     string
	CoordinationIDs []string
	// Message explains an empty-but-valid scope so the UI can say
	// "no coordination assigned" instead of "no data yet".
	Message string
}

// CoordinationRef is the minimal coordination view the resolver needs.
type CoordinationRef struct {
	ID               string
	CoordinatorEmail string
	Active           bool
}

// Resolve computes the effective scope for a caller. Scope follows the
// currently active level, not the union of assigned levels: a user
// holding both coordinator and administrator sees different data after
// switching levels even though the assignment is unchanged. Never fails
// for a well-formed authenticated user.
func Resolve(email string, activeLevel Level, assigned []Level, coordinations []CoordinationRef) Scope {
	if activeLevel == LevelAdministrator && Contains(assigned, LevelAdministrator) {
		return Scope{Kind: ScopeAll, CallerEmail: email}
	}

	if activeLevel == LevelCoordinator {
		var ids []string
		for _, c := range coordinations {
			if c.Active && c.CoordinatorEmail == email {
				ids = append(ids, c.ID)
			}
		}
		if len(ids) == 0 {
			return Scope{
				Kind:        ScopeNoCoordinations,
				CallerEmail: email,
				Message:     "Nenhuma coordenação ativa atribuída ao seu usuário.",
			}
		}
		return Scope{Kind: ScopeCoordinations, CallerEmail: email, CoordinationIDs: ids}
	}

	return Scope{Kind: ScopeSelf, CallerEmail: email}
}
