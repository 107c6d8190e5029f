package hierarchy

// Level is one of the three hierarchical roles a user can hold.
type Level string

const (
	LevelAdministrator Level = "administrator"
	LevelCoordinator   Level = "coordinator"
	LevelCollaborator  Level = "collaborator"
)

// ParseLevel validates a level name coming off the wire.
func ParseLevel(s string) (Level, bool) {
	switch Level(s) {
	case LevelAdministrator, LevelCoordinator, LevelCollaborator:
		return Level(s), true
	}
	return "", false
}

// Contains reports whether the level is in the assigned set.
func Contains(levels []Level, l Level) bool {
	for _, v := range levels {
		if v == l {
			return true
		}
	}
	return false
}

// Permissions is the fixed capability set attached to a level. Resolved
// once per request and never mutated.
type Permissions struct {
	ManageUsers         bool
	ManageCoordinations bool
	ManageGeofence      bool
	ReviewAbsences      bool
	ViewTeamRecords     bool
}

var permissionTable = map[Level]Permissions{
	LevelAdministrator: {
		ManageUsers:         true,
		ManageCoordinations: true,
		ManageGeofence:      true,
		ReviewAbsences:      true,
		ViewTeamRecords:     true,
	},
	LevelCoordinator: {
		ReviewAbsences:  true,
		ViewTeamRecords: true,
	},
	LevelCollaborator: {},
}

// PermissionsFor returns the capability set for a level. Unknown levels
// get the empty set.
func PermissionsFor(l Level) Permissions {
	return permissionTable[l]
}
