package hierarchy

import (
	"fmt"
	"testing"
)

func tenEmployees() []Employee {
	var emps []Employee
	for i := 0; i < 10; i++ {
		e := Employee{Email: fmt.Sprintf("user%d@escola.br", i)}
		if i < 3 {
			e.CoordinationIDs = []string{"A"}
		} else if i < 6 {
			e.CoordinationIDs = []string{"B"}
		}
		emps = append(emps, e)
	}
	return emps
}

func TestFilterCoordinationList(t *testing.T) {
	scope := Scope{Kind: ScopeCoordinations, CallerEmail: "coord@escola.br", CoordinationIDs: []string{"A"}}
	out, msg := FilterEmployees(scope, tenEmployees())
	if msg != "" {
		t.Fatalf("unexpected message %q", msg)
	}
	if len(out) != 3 {
		t.Fatalf("filtered = %d employees, want 3", len(out))
	}
	for _, e := range out {
		if e.CoordinationIDs[0] != "A" {
			t.Fatalf("employee %s outside coordination A passed the filter", e.Email)
		}
	}
}

func TestFilterAdministratorUnchanged(t *testing.T) {
	out, msg := FilterEmployees(Scope{Kind: ScopeAll}, tenEmployees())
	if len(out) != 10 || msg != "" {
		t.Fatalf("got %d employees, msg %q; want all 10 unchanged", len(out), msg)
	}
}

func TestFilterEmptyCoordinatorCarriesMessage(t *testing.T) {
	scope := Scope{Kind: ScopeNoCoordinations, Message: "Nenhuma coordenação ativa atribuída ao seu usuário."}
	out, msg := FilterEmployees(scope, tenEmployees())
	if len(out) != 0 {
		t.Fatalf("empty scope returned %d employees", len(out))
	}
	if msg == "" {
		t.Fatal("empty scope must be distinguishable from a plain empty result")
	}
}

func TestFilterSelf(t *testing.T) {
	scope := Scope{Kind: ScopeSelf, CallerEmail: "user5@escola.br"}
	out, _ := FilterEmployees(scope, tenEmployees())
	if len(out) != 1 || out[0].Email != "user5@escola.br" {
		t.Fatalf("self scope returned %v", out)
	}
}

func TestAllowedEmailsDerivedRecords(t *testing.T) {
	scope := Scope{Kind: ScopeCoordinations, CoordinationIDs: []string{"B"}}
	allowed, _ := AllowedEmails(scope, tenEmployees())
	if len(allowed) != 3 {
		t.Fatalf("allowed set size = %d, want 3", len(allowed))
	}
	if !allowed["user4@escola.br"] || allowed["user0@escola.br"] {
		t.Fatalf("allowed set wrong: %v", allowed)
	}
}
