package timeclock

import (
	"fmt"
	"math"

	"ponto/internal/geofence"
)

// Stable machine-readable codes carried by clock rejections.
const (
	CodeLocationRequired   = "LOCATION_REQUIRED"
	CodeInvalidCoordinates = "INVALID_COORDINATES"
	CodeOutOfRange         = "OUT_OF_RANGE"
	CodeInvalidSequence    = "INVALID_SEQUENCE"
	CodeInternal           = "INTERNAL_ERROR"
)

// Location is the optional payload submitted with a clock event.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Accuracy  float64 `json:"accuracy"`
}

// RejectionError is a business-rule rejection of a clock event, not a
// system failure. OUT_OF_RANGE carries the computed distance and the
// configured maximum so the caller can explain the rejection.
type RejectionError struct {
	Code              string
	Message           string
	DistanceMeters    float64
	MaxDistanceMeters float64
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ValidateLocation gates a clock event behind the geofence. Returns the
// computed distance when a check actually ran (enabled + valid payload).
func ValidateLocation(settings geofence.Settings, loc *Location) (float64, error) {
	if loc != nil && (!finite(loc.Latitude) || !finite(loc.Longitude) || loc.Latitude == 0 || loc.Longitude == 0) {
		// 0,0 is mid-ocean and never a legitimate workplace; devices
		// report it when the fix is unavailable. The record keeps the
		// submitted coordinates, so a garbage payload is rejected even
		// with the fence off.
		return 0, &RejectionError{
			Code:    CodeInvalidCoordinates,
			Message: "Coordenadas inválidas.",
		}
	}
	if !settings.Enabled {
		return 0, nil
	}
	if loc == nil {
		return 0, &RejectionError{
			Code:    CodeLocationRequired,
			Message: "Localização obrigatória para registrar o ponto.",
		}
	}
	inside, distance := settings.Classify(loc.Latitude, loc.Longitude)
	if !inside {
		return distance, &RejectionError{
			Code:              CodeOutOfRange,
			Message:           "Você está fora do raio permitido para registrar o ponto.",
			DistanceMeters:    distance,
			MaxDistanceMeters: settings.AllowedRadiusMeters,
		}
	}
	return distance, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
