package timeclock

import (
	"errors"
	"math"
	"testing"

	"ponto/internal/geofence"
)

var fence = geofence.Settings{
	Enabled:             true,
	WorkplaceLatitude:   -15.7942,
	WorkplaceLongitude:  -47.8822,
	AllowedRadiusMeters: 100,
}

func rejection(t *testing.T, err error) *RejectionError {
	t.Helper()
	var rej *RejectionError
	if !errors.As(err, &rej) {
		t.Fatalf("expected RejectionError, got %v", err)
	}
	return rej
}

func TestValidateLocationDisabledSkips(t *testing.T) {
	disabled := fence
	disabled.Enabled = false
	if _, err := ValidateLocation(disabled, nil); err != nil {
		t.Fatalf("disabled geofence must skip validation, got %v", err)
	}
	// A real payload still passes; only garbage coordinates are refused.
	if _, err := ValidateLocation(disabled, &Location{Latitude: -15.79, Longitude: -47.88}); err != nil {
		t.Fatalf("disabled geofence must accept a valid payload, got %v", err)
	}
}

func TestValidateLocationRequired(t *testing.T) {
	_, err := ValidateLocation(fence, nil)
	if rej := rejection(t, err); rej.Code != CodeLocationRequired {
		t.Fatalf("code = %s, want %s", rej.Code, CodeLocationRequired)
	}
}

func TestValidateLocationZeroIsAlwaysInvalid(t *testing.T) {
	// 0,0 is the "unavailable" sentinel; rejected regardless of the
	// configured geofence, a disabled one included.
	disabled := fence
	disabled.Enabled = false
	fences := []geofence.Settings{fence, disabled, {Enabled: true, AllowedRadiusMeters: 10000}, {}}
	for _, f := range fences {
		_, err := ValidateLocation(f, &Location{Latitude: 0, Longitude: 0})
		if rej := rejection(t, err); rej.Code != CodeInvalidCoordinates {
			t.Fatalf("code = %s, want %s", rej.Code, CodeInvalidCoordinates)
		}
	}
}

func TestValidateLocationNonFinite(t *testing.T) {
	bad := []Location{
		{Latitude: math.NaN(), Longitude: -47.88},
		{Latitude: -15.79, Longitude: math.Inf(1)},
		{Latitude: 0, Longitude: -47.88},
		{Latitude: -15.79, Longitude: 0},
	}
	for _, loc := range bad {
		l := loc
		_, err := ValidateLocation(fence, &l)
		if rej := rejection(t, err); rej.Code != CodeInvalidCoordinates {
			t.Fatalf("code for %+v = %s, want %s", loc, rej.Code, CodeInvalidCoordinates)
		}
	}
}

func TestValidateLocationOutOfRangeReportsDistances(t *testing.T) {
	// ~150m east of the workplace against a 100m radius.
	loc := &Location{Latitude: -15.7942, Longitude: -47.8808}
	_, err := ValidateLocation(fence, loc)
	rej := rejection(t, err)
	if rej.Code != CodeOutOfRange {
		t.Fatalf("code = %s, want %s", rej.Code, CodeOutOfRange)
	}
	if rej.DistanceMeters < 140 || rej.DistanceMeters > 160 {
		t.Fatalf("distance = %f, want ~150", rej.DistanceMeters)
	}
	if rej.MaxDistanceMeters != 100 {
		t.Fatalf("max distance = %f, want 100", rej.MaxDistanceMeters)
	}
}

func TestValidateLocationInsideSucceeds(t *testing.T) {
	loc := &Location{Latitude: -15.7942, Longitude: -47.8821}
	d, err := ValidateLocation(fence, loc)
	if err != nil {
		t.Fatalf("unexpected rejection: %v", err)
	}
	if d <= 0 || d > 100 {
		t.Fatalf("distance = %f, want within (0,100]", d)
	}
}
