package timeclock

import (
	"context"
	"fmt"
	"time"

	"ponto/internal/geofence"
)

// SettingsSource loads the current geofence configuration. The server
// validator and the client monitor read the same persisted row.
type SettingsSource interface {
	Get(ctx context.Context) (geofence.Settings, error)
}

// Result is the success payload of a clock submission.
type Result struct {
	Time           string   `json:"time"`
	DistanceMeters *float64 `json:"distanceMeters,omitempty"`
}

// Service gates and persists clock events.
type Service struct {
	repo     *Repository
	settings SettingsSource
	zone     *time.Location
	now      func() time.Time
}

// NewService creates a service. zone is the workplace time zone used for
// both the stored calendar day and the "HH:MM" event time.
func NewService(repo *Repository, settings SettingsSource, zone *time.Location) *Service {
	if zone == nil {
		zone = time.UTC
	}
	return &Service{repo: repo, settings: settings, zone: zone, now: time.Now}
}

// Clock validates one event against the geofence and persists it with
// the server-observed wall-clock time. Client-supplied times are never
// trusted.
func (s *Service) Clock(ctx context.Context, email string, event EventType, loc *Location) (Record, Result, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return Record{}, Result{}, fmt.Errorf("load geofence settings: %w", err)
	}

	distance, err := ValidateLocation(settings, loc)
	if err != nil {
		return Record{}, Result{}, err
	}

	now := s.now().In(s.zone)
	day := now.Format("2006-01-02")
	hhmm := now.Format("15:04")

	existing, err := s.repo.GetDay(ctx, email, day)
	if err != nil {
		return Record{}, Result{}, fmt.Errorf("load day record: %w", err)
	}
	var current Record
	if existing != nil {
		current = *existing
	}
	if err := checkOrder(current, event, hhmm); err != nil {
		return Record{}, Result{}, &RejectionError{Code: CodeInvalidSequence, Message: err.Error()}
	}

	var lat, lon *float64
	if loc != nil {
		lat, lon = &loc.Latitude, &loc.Longitude
	}
	rec, err := s.repo.UpsertEvent(ctx, email, day, event, hhmm, lat, lon)
	if err != nil {
		return Record{}, Result{}, fmt.Errorf("persist clock event: %w", err)
	}
	rec.Derive()

	res := Result{Time: hhmm}
	if settings.Enabled && loc != nil {
		res.DistanceMeters = &distance
	}
	return rec, res, nil
}

// Records returns the caller's own records for the range.
func (s *Service) Records(ctx context.Context, email, from, to string) ([]Record, error) {
	if from == "" || to == "" {
		from, to = DefaultRange(s.now().In(s.zone))
	}
	return s.repo.ListByUser(ctx, email, from, to, 0)
}

// AllRecords returns every record in the range; the handler filters the
// result down to the caller's scope.
func (s *Service) AllRecords(ctx context.Context, from, to string) ([]Record, error) {
	if from == "" || to == "" {
		from, to = DefaultRange(s.now().In(s.zone))
	}
	return s.repo.ListAll(ctx, from, to)
}
