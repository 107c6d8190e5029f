package hierarchy

import "testing"

func TestResolveAdministratorAll(t *testing.T) {
	s := Resolve("admin@escola.br", LevelAdministrator, []Level{LevelAdministrator}, nil)
	if s.Kind != ScopeAll {
		t.Fatalf("kind = %s, want %s", s.Kind, ScopeAll)
	}
}

func TestResolveCoordinatorWithCoordinations(t *testing.T) {
	coords := []CoordinationRef{
		{ID: "A", CoordinatorEmail: "coord@escola.br", Active: true},
		{ID: "B", CoordinatorEmail: "coord@escola.br", Active: false},
		{ID: "C", CoordinatorEmail: "outra@escola.br", Active: true},
	}
	s := Resolve("coord@escola.br", LevelCoordinator, []Level{LevelCoordinator}, coords)
	if s.Kind != ScopeCoordinations {
		t.Fatalf("kind = %s, want %s", s.Kind, ScopeCoordinations)
	}
	// Inactive coordinations do not count toward authority.
	if len(s.CoordinationIDs) != 1 || s.CoordinationIDs[0] != "A" {
		t.Fatalf("coordination ids = %v, want [A]", s.CoordinationIDs)
	}
}

func TestResolveCoordinatorEmptyIsNotSelf(t *testing.T) {
	// Holds both levels, active level coordinator, coordinates nothing
	// active: must resolve to the explicit empty scope, not self and not
	// administrator-all.
	assigned := []Level{LevelCoordinator, LevelAdministrator}
	coords := []CoordinationRef{
		{ID: "A", CoordinatorEmail: "coord@escola.br", Active: false},
	}
	s := Resolve("coord@escola.br", LevelCoordinator, assigned, coords)
	if s.Kind != ScopeNoCoordinations {
		t.Fatalf("kind = %s, want %s", s.Kind, ScopeNoCoordinations)
	}
	if s.Message == "" {
		t.Fatal("empty coordinator scope must carry an explanatory message")
	}
}

func TestResolveLevelSwitchChangesScope(t *testing.T) {
	assigned := []Level{LevelCoordinator, LevelAdministrator}
	coords := []CoordinationRef{
		{ID: "A", CoordinatorEmail: "chefe@escola.br", Active: true},
	}

	asCoord := Resolve("chefe@escola.br", LevelCoordinator, assigned, coords)
	if asCoord.Kind != ScopeCoordinations {
		t.Fatalf("coordinator scope kind = %s, want %s", asCoord.Kind, ScopeCoordinations)
	}

	asAdmin := Resolve("chefe@escola.br", LevelAdministrator, assigned, coords)
	if asAdmin.Kind != ScopeAll {
		t.Fatalf("administrator scope kind = %s, want %s", asAdmin.Kind, ScopeAll)
	}
}

func TestResolveCollaboratorSelf(t *testing.T) {
	s := Resolve("prof@escola.br", LevelCollaborator, []Level{LevelCollaborator}, nil)
	if s.Kind != ScopeSelf || s.CallerEmail != "prof@escola.br" {
		t.Fatalf("scope = %+v, want self for prof@escola.br", s)
	}
}

func TestPermissionsTable(t *testing.T) {
	if !PermissionsFor(LevelAdministrator).ManageGeofence {
		t.Fatal("administrator must manage geofence settings")
	}
	if PermissionsFor(LevelCoordinator).ManageUsers {
		t.Fatal("coordinator must not manage users")
	}
	if !PermissionsFor(LevelCoordinator).ReviewAbsences {
		t.Fatal("coordinator must review absences")
	}
	if PermissionsFor(LevelCollaborator).ViewTeamRecords {
		t.Fatal("collaborator must not view team records")
	}
}

func TestParseLevel(t *testing.T) {
	if _, ok := ParseLevel("coordinator"); !ok {
		t.Fatal("coordinator should parse")
	}
	if _, ok := ParseLevel("chefe"); ok {
		t.Fatal("unknown level should not parse")
	}
}
