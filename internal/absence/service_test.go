package absence

import (
	"context"
	"errors"
	"testing"
)

func TestValidTipo(t *testing.T) {
	for _, tipo := range []string{TipoFalta, TipoAtestado, TipoLicenca} {
		if !ValidTipo(tipo) {
			t.Errorf("%q should be valid", tipo)
		}
	}
	if ValidTipo("ferias") {
		t.Error("unknown tipo should be invalid")
	}
}

// Submit must reject before touching storage; a nil repository proves no
// write path is reached.
func TestSubmitValidatesBeforePersisting(t *testing.T) {
	s := NewService(nil)
	ctx := context.Background()

	cases := []struct {
		name          string
		day, tipo     string
		justificativa string
		want          error
	}{
		{"unknown tipo", "2026-03-10", "ferias", "viagem", ErrInvalidTipo},
		{"bad date", "10/03/2026", TipoFalta, "consulta", ErrInvalidDate},
		{"empty justification", "2026-03-10", TipoAtestado, "", ErrEmptyReason},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Submit(ctx, "ana@example.com", tc.day, tc.tipo, tc.justificativa, nil)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestReviewRejectsUnknownStatus(t *testing.T) {
	s := NewService(nil)
	_, err := s.Review(context.Background(), "id", "cancelada", nil, "chefe@example.com")
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("err = %v, want %v", err, ErrInvalidStatus)
	}
}
