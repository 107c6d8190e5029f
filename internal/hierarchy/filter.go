package hierarchy

// Employee is the minimal employee view the filter operates on.
type Employee struct {
	Email           string
	CoordinationIDs []string
}

// FilterEmployees narrows a candidate collection to the caller's scope.
// The returned message is non-empty only for an empty-but-valid scope.
// Always applied server-side; listing endpoints never trust the client
// to limit its own request.
func FilterEmployees(scope Scope, employees []Employee) ([]Employee, string) {
	switch scope.Kind {
	case ScopeAll:
		return employees, ""
	case ScopeCoordinations:
		allowed := make(map[string]bool, len(scope.CoordinationIDs))
		for _, id := range scope.CoordinationIDs {
			allowed[id] = true
		}
		var out []Employee
		for _, e := range employees {
			for _, id := range e.CoordinationIDs {
				if allowed[id] {
					out = append(out, e)
					break
				}
			}
		}
		return out, ""
	case ScopeNoCoordinations:
		return nil, scope.Message
	default:
		var out []Employee
		for _, e := range employees {
			if e.Email == scope.CallerEmail {
				out = append(out, e)
			}
		}
		return out, ""
	}
}

// AllowedEmails resolves the set of employee emails inside the scope.
// Derived records (clock records, absences) pass the filter when their
// owning employee does.
func AllowedEmails(scope Scope, employees []Employee) (map[string]bool, string) {
	filtered, msg := FilterEmployees(scope, employees)
	allowed := make(map[string]bool, len(filtered))
	for _, e := range filtered {
		allowed[e.Email] = true
	}
	return allowed, msg
}
