package report

import (
	"testing"

	"ponto/internal/timeclock"
)

func strp(s string) *string { return &s }

func TestColName(t *testing.T) {
	cases := map[int]string{1: "A", 26: "Z", 27: "AA", 52: "AZ", 53: "BA"}
	for n, want := range cases {
		if got := colName(n); got != want {
			t.Errorf("colName(%d) = %s, want %s", n, got, want)
		}
	}
}

func TestBuildTimesheet(t *testing.T) {
	rec := timeclock.Record{
		UserEmail: "prof@escola.br",
		Day:       "2025-03-10",
		Entry:     strp("08:00"),
		Exit:      strp("17:00"),
	}
	rec.Derive()

	f, err := BuildTimesheet([]timeclock.Record{rec})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	got, err := f.GetCellValue("Espelho de Ponto", "A2")
	if err != nil || got != "prof@escola.br" {
		t.Fatalf("A2 = %q (err %v), want prof@escola.br", got, err)
	}
	got, _ = f.GetCellValue("Espelho de Ponto", "I2")
	if got != "09:00" {
		t.Fatalf("worked hours cell = %q, want 09:00", got)
	}
}
