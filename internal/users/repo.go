package users

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"ponto/internal/hierarchy"
)

// Repository persists users in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const userColumns = `email, name, levels, active_level, status, collaborator_type, work_schedule, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (User, error) {
	var u User
	var levels, activeLevel string
	if err := row.Scan(&u.Email, &u.Name, &levels, &activeLevel, &u.Status, &u.CollaboratorType, &u.WorkSchedule, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return User{}, err
	}
	u.Levels = splitLevels(levels)
	u.ActiveLevel = hierarchy.Level(activeLevel)
	return u, nil
}

// Ensure creates the user on first sign-in (status pending, no levels)
// and returns the stored record either way.
func (r *Repository) Ensure(ctx context.Context, email, name string) (User, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (email, name)
		VALUES ($1, $2)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name, updated_at = NOW()
	`, email, name)
	if err != nil {
		return User{}, err
	}
	return r.Get(ctx, email)
}

// Get returns a single user by email.
func (r *Repository) Get(ctx context.Context, email string) (User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	u.CoordinationIDs, err = r.memberships(ctx, email)
	return u, err
}

// List returns all users with their coordination memberships attached.
func (r *Repository) List(ctx context.Context) ([]User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	memberships, err := r.allMemberships(ctx)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].CoordinationIDs = memberships[out[i].Email]
	}
	return out, nil
}

// Approve activates a pending user with the assigned levels. The first
// assigned level becomes the active one.
func (r *Repository) Approve(ctx context.Context, email string, levels []hierarchy.Level, collaboratorType *string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET status = $2, levels = $3, active_level = $4, collaborator_type = $5, updated_at = NOW()
		WHERE email = $1
	`, email, StatusActive, joinLevels(levels), string(levels[0]), collaboratorType)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Deactivate moves a user to inactive.
func (r *Repository) Deactivate(ctx context.Context, email string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET status = $2, updated_at = NOW() WHERE email = $1
	`, email, StatusInactive)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// SetActiveLevel switches the user's currently active level.
func (r *Repository) SetActiveLevel(ctx context.Context, email string, level hierarchy.Level) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET active_level = $2, updated_at = NOW() WHERE email = $1
	`, email, string(level))
	if err != nil {
		return err
	}
	return requireRow(res)
}

// SetWorkSchedule stores the configured work schedule for a user.
func (r *Repository) SetWorkSchedule(ctx context.Context, email, schedule string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET work_schedule = $2, updated_at = NOW() WHERE email = $1
	`, email, schedule)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *Repository) memberships(ctx context.Context, email string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT coordination_id FROM coordination_members WHERE user_email = $1
	`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *Repository) allMemberships(ctx context.Context) (map[string][]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT user_email, coordination_id FROM coordination_members`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]string)
	for rows.Next() {
		var email, id string
		if err := rows.Scan(&email, &id); err != nil {
			return nil, err
		}
		out[email] = append(out[email], id)
	}
	return out, rows.Err()
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func joinLevels(levels []hierarchy.Level) string {
	parts := make([]string, len(levels))
	for i, l := range levels {
		parts[i] = string(l)
	}
	return strings.Join(parts, ",")
}

func splitLevels(s string) []hierarchy.Level {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]hierarchy.Level, 0, len(parts))
	for _, p := range parts {
		if l, ok := hierarchy.ParseLevel(strings.TrimSpace(p)); ok {
			out = append(out, l)
		}
	}
	return out
}
