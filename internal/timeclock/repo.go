package timeclock

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// eventColumn maps each event type to its record column. Fixed mapping,
// never built from request input.
var eventColumn = map[EventType]string{
	EventEntry:      "entry_time",
	EventExit:       "exit_time",
	EventLunchStart: "lunch_start",
	EventLunchEnd:   "lunch_end",
	EventHTPStart:   "htp_start",
	EventHTPEnd:     "htp_end",
}

// Repository persists clock records in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const recordColumns = `id, user_email, to_char(day, 'YYYY-MM-DD'), entry_time, exit_time, lunch_start, lunch_end, htp_start, htp_end, last_lat, last_lon`

func scanRecord(row interface{ Scan(...any) error }) (Record, error) {
	var r Record
	err := row.Scan(&r.ID, &r.UserEmail, &r.Day, &r.Entry, &r.Exit, &r.LunchStart, &r.LunchEnd, &r.HTPStart, &r.HTPEnd, &r.LastLat, &r.LastLon)
	return r, err
}

// GetDay returns the record for (user, day), or nil when the user has
// not clocked in that day yet.
func (r *Repository) GetDay(ctx context.Context, email, day string) (*Record, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+recordColumns+` FROM clock_records WHERE user_email = $1 AND day = $2
	`, email, day)
	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// UpsertEvent writes one event time into the day's record, creating the
// record on the first event of the day. Concurrent writers for the same
// (user, day) follow last-write-wins on the event column.
func (r *Repository) UpsertEvent(ctx context.Context, email, day string, event EventType, hhmm string, lat, lon *float64) (Record, error) {
	col, ok := eventColumn[event]
	if !ok {
		return Record{}, errors.New("unknown event type")
	}
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO clock_records (id, user_email, day, `+col+`, last_lat, last_lon)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_email, day) DO UPDATE SET
			`+col+` = EXCLUDED.`+col+`,
			last_lat = COALESCE(EXCLUDED.last_lat, clock_records.last_lat),
			last_lon = COALESCE(EXCLUDED.last_lon, clock_records.last_lon),
			updated_at = NOW()
		RETURNING `+recordColumns+`
	`, uuid.NewString(), email, day, hhmm, lat, lon)
	return scanRecord(row)
}

// ListByUser returns a user's records for a day range, newest first.
func (r *Repository) ListByUser(ctx context.Context, email, from, to string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 62
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+recordColumns+` FROM clock_records
		WHERE user_email = $1 AND day BETWEEN $2 AND $3
		ORDER BY day DESC LIMIT $4
	`, email, from, to, limit)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

// ListAll returns every record in a day range; the caller applies scope
// filtering afterwards.
func (r *Repository) ListAll(ctx context.Context, from, to string) ([]Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+recordColumns+` FROM clock_records
		WHERE day BETWEEN $1 AND $2
		ORDER BY day DESC, user_email
	`, from, to)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func collect(rows *sql.Rows) ([]Record, error) {
	defer rows.Close()
	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		rec.Derive()
		out = append(out, rec)
	}
	return out, rows.Err()
}

// DefaultRange is the current month in the given zone, for listings
// without explicit bounds.
func DefaultRange(now time.Time) (string, string) {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	last := first.AddDate(0, 1, -1)
	return first.Format("2006-01-02"), last.Format("2006-01-02")
}
