package store

import (
	"database/sql"
	"log"
)

// Migrate creates the schema when missing. Statements run one table at a
// time so a failure names the table it broke on.
func Migrate(db *sql.DB) error {
	stmts := []struct {
		table string
		sql   string
	}{
		{"users", `
CREATE TABLE IF NOT EXISTS users (
	email             TEXT PRIMARY KEY,
	name              TEXT NOT NULL,
	levels            TEXT NOT NULL DEFAULT '',
	active_level      TEXT NOT NULL DEFAULT '',
	status            TEXT NOT NULL DEFAULT 'pending',
	collaborator_type TEXT,
	work_schedule     TEXT,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`},
		{"coordinations", `
CREATE TABLE IF NOT EXISTS coordinations (
	id                UUID PRIMARY KEY,
	name              TEXT NOT NULL,
	description       TEXT NOT NULL DEFAULT '',
	coordinator_email TEXT,
	coordinator_name  TEXT,
	active            BOOLEAN NOT NULL DEFAULT TRUE,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`},
		{"coordination_members", `
CREATE TABLE IF NOT EXISTS coordination_members (
	coordination_id UUID NOT NULL REFERENCES coordinations(id) ON DELETE CASCADE,
	user_email      TEXT NOT NULL,
	user_name       TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (coordination_id, user_email)
);`},
		{"clock_records", `
CREATE TABLE IF NOT EXISTS clock_records (
	id          UUID PRIMARY KEY,
	user_email  TEXT NOT NULL,
	day         DATE NOT NULL,
	entry_time  TEXT,
	exit_time   TEXT,
	lunch_start TEXT,
	lunch_end   TEXT,
	htp_start   TEXT,
	htp_end     TEXT,
	last_lat    DOUBLE PRECISION,
	last_lon    DOUBLE PRECISION,
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (user_email, day)
);
CREATE INDEX IF NOT EXISTS idx_clock_records_day ON clock_records(day);`},
		{"absences", `
CREATE TABLE IF NOT EXISTS absences (
	id             UUID PRIMARY KEY,
	user_email     TEXT NOT NULL,
	day            DATE NOT NULL,
	tipo           TEXT NOT NULL,
	justificativa  TEXT NOT NULL,
	link_documento TEXT,
	status         TEXT NOT NULL DEFAULT 'pendente',
	motivo         TEXT,
	submitted_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	reviewed_at    TIMESTAMPTZ,
	reviewed_by    TEXT
);
CREATE INDEX IF NOT EXISTS idx_absences_user ON absences(user_email);`},
		{"refresh_tokens", `
CREATE TABLE IF NOT EXISTS refresh_tokens (
	user_email TEXT NOT NULL,
	token      TEXT NOT NULL,
	expires_at TIMESTAMPTZ NOT NULL,
	revoked    BOOLEAN NOT NULL DEFAULT FALSE
);`},
		{"geofence_settings", `
CREATE TABLE IF NOT EXISTS geofence_settings (
	id            INT PRIMARY KEY,
	enabled       BOOLEAN NOT NULL DEFAULT FALSE,
	workplace_lat DOUBLE PRECISION NOT NULL DEFAULT 0,
	workplace_lon DOUBLE PRECISION NOT NULL DEFAULT 0,
	radius_m      DOUBLE PRECISION NOT NULL DEFAULT 100,
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`},
	}

	for _, s := range stmts {
		if _, err := db.Exec(s.sql); err != nil {
			log.Printf("migration failed on table %s: %v", s.table, err)
			return err
		}
	}
	return nil
}
