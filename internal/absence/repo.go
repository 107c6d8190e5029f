package absence

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound reports a missing absence.
var ErrNotFound = errors.New("absence not found")

// Repository persists absences in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const absenceColumns = `id, user_email, to_char(day, 'YYYY-MM-DD'), tipo, justificativa, link_documento, status, motivo, submitted_at, reviewed_at, reviewed_by`

func scanAbsence(row interface{ Scan(...any) error }) (Absence, error) {
	var a Absence
	err := row.Scan(&a.ID, &a.UserEmail, &a.Day, &a.Tipo, &a.Justificativa, &a.LinkDocumento, &a.Status, &a.Motivo, &a.SubmittedAt, &a.ReviewedAt, &a.ReviewedBy)
	return a, err
}

// Insert creates a pending absence and returns it.
func (r *Repository) Insert(ctx context.Context, a Absence) (Absence, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.Status = StatusPendente
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO absences (id, user_email, day, tipo, justificativa, link_documento)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING submitted_at
	`, a.ID, a.UserEmail, a.Day, a.Tipo, a.Justificativa, a.LinkDocumento)
	if err := row.Scan(&a.SubmittedAt); err != nil {
		return Absence{}, err
	}
	return a, nil
}

// Get returns one absence.
func (r *Repository) Get(ctx context.Context, id string) (Absence, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+absenceColumns+` FROM absences WHERE id = $1`, id)
	a, err := scanAbsence(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Absence{}, ErrNotFound
		}
		return Absence{}, err
	}
	return a, nil
}

// Review records the outcome of a review.
func (r *Repository) Review(ctx context.Context, id, status string, motivo *string, reviewer string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE absences
		SET status = $2, motivo = $3, reviewed_at = NOW(), reviewed_by = $4
		WHERE id = $1
	`, id, status, motivo, reviewer)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByUser returns a user's absences, newest first.
func (r *Repository) ListByUser(ctx context.Context, email string) ([]Absence, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+absenceColumns+` FROM absences WHERE user_email = $1 ORDER BY day DESC
	`, email)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

// ListAll returns every absence; the caller applies scope filtering.
func (r *Repository) ListAll(ctx context.Context) ([]Absence, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+absenceColumns+` FROM absences ORDER BY day DESC
	`)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func collect(rows *sql.Rows) ([]Absence, error) {
	defer rows.Close()
	var out []Absence
	for rows.Next() {
		a, err := scanAbsence(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
