package geofence

import (
	"testing"

	"ponto/internal/geo"
)

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name    string
		s       Settings
		wantErr bool
	}{
		{"valid", Settings{WorkplaceLatitude: -15.79, WorkplaceLongitude: -47.88, AllowedRadiusMeters: 100}, false},
		{"lat too low", Settings{WorkplaceLatitude: -91, WorkplaceLongitude: 0, AllowedRadiusMeters: 100}, true},
		{"lat too high", Settings{WorkplaceLatitude: 91, WorkplaceLongitude: 0, AllowedRadiusMeters: 100}, true},
		{"lon too low", Settings{WorkplaceLatitude: 0, WorkplaceLongitude: -181, AllowedRadiusMeters: 100}, true},
		{"lon too high", Settings{WorkplaceLatitude: 0, WorkplaceLongitude: 181, AllowedRadiusMeters: 100}, true},
		{"radius too small", Settings{WorkplaceLatitude: 0, WorkplaceLongitude: 0, AllowedRadiusMeters: 9}, true},
		{"radius too large", Settings{WorkplaceLatitude: 0, WorkplaceLongitude: 0, AllowedRadiusMeters: 10001}, true},
		{"radius at bounds", Settings{WorkplaceLatitude: 0, WorkplaceLongitude: 0, AllowedRadiusMeters: 10}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.s.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestClassifyBoundaryInclusive(t *testing.T) {
	s := Settings{WorkplaceLatitude: -15.7942, WorkplaceLongitude: -47.8822}
	lat, lon := -15.7942, -47.8809
	// Set the radius to the exact computed distance; a point at exactly
	// the radius counts as inside.
	s.AllowedRadiusMeters = geo.Distance(lat, lon, s.WorkplaceLatitude, s.WorkplaceLongitude)

	inside, dist := s.Classify(lat, lon)
	if !inside {
		t.Fatalf("point at exact radius classified outside (distance %f)", dist)
	}

	s.AllowedRadiusMeters -= 0.001
	if inside, _ := s.Classify(lat, lon); inside {
		t.Fatal("point beyond radius classified inside")
	}
}
