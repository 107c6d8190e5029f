package geofence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ponto/internal/geo"
)

// Settings is the admin-managed geofence configuration. Both the server
// validator and the client monitor load it from the same persisted row.
type Settings struct {
	Enabled             bool    `json:"enabled"`
	WorkplaceLatitude   float64 `json:"workplaceLatitude"`
	WorkplaceLongitude  float64 `json:"workplaceLongitude"`
	AllowedRadiusMeters float64 `json:"allowedRadiusMeters"`
}

// Validate checks the configured ranges.
func (s Settings) Validate() error {
	if s.WorkplaceLatitude < -90 || s.WorkplaceLatitude > 90 {
		return fmt.Errorf("workplace latitude %f out of range [-90,90]", s.WorkplaceLatitude)
	}
	if s.WorkplaceLongitude < -180 || s.WorkplaceLongitude > 180 {
		return fmt.Errorf("workplace longitude %f out of range [-180,180]", s.WorkplaceLongitude)
	}
	if s.AllowedRadiusMeters < 10 || s.AllowedRadiusMeters > 10000 {
		return fmt.Errorf("allowed radius %f out of range [10,10000] meters", s.AllowedRadiusMeters)
	}
	return nil
}

// Classify returns whether the point lies inside the fence and the
// computed distance to the workplace. The boundary is inclusive.
func (s Settings) Classify(lat, lon float64) (inside bool, distance float64) {
	distance = geo.Distance(lat, lon, s.WorkplaceLatitude, s.WorkplaceLongitude)
	return distance <= s.AllowedRadiusMeters, distance
}

// Repository persists the single geofence settings row.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Get loads the settings. A missing row means geofencing was never
// configured and comes back disabled.
func (r *Repository) Get(ctx context.Context) (Settings, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT enabled, workplace_lat, workplace_lon, radius_m
		FROM geofence_settings WHERE id = 1
	`)
	var s Settings
	if err := row.Scan(&s.Enabled, &s.WorkplaceLatitude, &s.WorkplaceLongitude, &s.AllowedRadiusMeters); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Settings{}, nil
		}
		return Settings{}, err
	}
	return s, nil
}

// Put validates and upserts the settings row.
func (r *Repository) Put(ctx context.Context, s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO geofence_settings (id, enabled, workplace_lat, workplace_lon, radius_m)
		VALUES (1, $1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			enabled = EXCLUDED.enabled,
			workplace_lat = EXCLUDED.workplace_lat,
			workplace_lon = EXCLUDED.workplace_lon,
			radius_m = EXCLUDED.radius_m,
			updated_at = NOW()
	`, s.Enabled, s.WorkplaceLatitude, s.WorkplaceLongitude, s.AllowedRadiusMeters)
	return err
}
