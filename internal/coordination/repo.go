package coordination

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"ponto/internal/hierarchy"
)

// ErrNotFound reports a missing coordination.
var ErrNotFound = errors.New("coordination not found")

// Repository persists coordinations in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new coordination and returns it.
func (r *Repository) Create(ctx context.Context, name, description string) (Coordination, error) {
	c := Coordination{ID: uuid.NewString(), Name: name, Description: description, Active: true}
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO coordinations (id, name, description, active)
		VALUES ($1, $2, $3, TRUE)
		RETURNING created_at
	`, c.ID, c.Name, c.Description)
	if err := row.Scan(&c.CreatedAt); err != nil {
		return Coordination{}, err
	}
	return c, nil
}

// Update changes name, description and active flag.
func (r *Repository) Update(ctx context.Context, id, name, description string, active bool) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE coordinations SET name = $2, description = $3, active = $4 WHERE id = $1
	`, id, name, description, active)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// SetCoordinator assigns (or with empty email, clears) the coordinator.
// A coordination has at most one coordinator at a time; assignment
// replaces the previous one.
func (r *Repository) SetCoordinator(ctx context.Context, id, email, name string) error {
	var e, n any
	if email != "" {
		e, n = email, name
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE coordinations SET coordinator_email = $2, coordinator_name = $3 WHERE id = $1
	`, id, e, n)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// AddMember registers a collaborator in a coordination.
func (r *Repository) AddMember(ctx context.Context, id, email, name string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO coordination_members (coordination_id, user_email, user_name)
		VALUES ($1, $2, $3)
		ON CONFLICT (coordination_id, user_email) DO UPDATE SET user_name = EXCLUDED.user_name
	`, id, email, name)
	return notFoundOnFK(err)
}

// RemoveMember drops a collaborator from a coordination.
func (r *Repository) RemoveMember(ctx context.Context, id, email string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM coordination_members WHERE coordination_id = $1 AND user_email = $2
	`, id, email)
	return err
}

// List returns all coordinations.
func (r *Repository) List(ctx context.Context) ([]Coordination, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, description, coordinator_email, coordinator_name, active, created_at
		FROM coordinations ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Coordination
	for rows.Next() {
		var c Coordination
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CoordinatorEmail, &c.CoordinatorName, &c.Active, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Refs returns the minimal view the scope resolver consumes.
func (r *Repository) Refs(ctx context.Context) ([]hierarchy.CoordinationRef, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, COALESCE(coordinator_email, ''), active FROM coordinations
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []hierarchy.CoordinationRef
	for rows.Next() {
		var ref hierarchy.CoordinationRef
		if err := rows.Scan(&ref.ID, &ref.CoordinatorEmail, &ref.Active); err != nil {
			return nil, err
		}
		out = append(out, ref)
	}
	return out, rows.Err()
}

// Members lists the members of one coordination.
func (r *Repository) Members(ctx context.Context, id string) ([]Member, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT coordination_id, user_email, user_name
		FROM coordination_members WHERE coordination_id = $1 ORDER BY user_name
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Member
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.CoordinationID, &m.UserEmail, &m.UserName); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// notFoundOnFK turns a foreign-key violation on coordination_members
// into ErrNotFound: the only FK there is the coordination id, so the
// violation means the caller pointed at a coordination that does not
// exist.
func notFoundOnFK(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return ErrNotFound
	}
	return err
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
