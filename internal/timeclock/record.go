package timeclock

import (
	"fmt"
	"time"
)

// EventType is one of the six clock actions.
type EventType string

const (
	EventEntry      EventType = "entry"
	EventExit       EventType = "exit"
	EventLunchStart EventType = "lunch-start"
	EventLunchEnd   EventType = "lunch-end"
	EventHTPStart   EventType = "htp-start"
	EventHTPEnd     EventType = "htp-end"
)

// ParseEventType validates an event name coming off the wire.
func ParseEventType(s string) (EventType, bool) {
	switch EventType(s) {
	case EventEntry, EventExit, EventLunchStart, EventLunchEnd, EventHTPStart, EventHTPEnd:
		return EventType(s), true
	}
	return "", false
}

// Record is one calendar day's set of time events for one user. Times
// are stored as "HH:MM" in the workplace time zone. Created on the first
// clock-in of the day, mutated by each later event, never deleted.
type Record struct {
	ID         string  `json:"id"`
	UserEmail  string  `json:"userEmail"`
	Day        string  `json:"day"` // YYYY-MM-DD
	Entry      *string `json:"entrada,omitempty"`
	Exit       *string `json:"saida,omitempty"`
	LunchStart *string `json:"almocoInicio,omitempty"`
	LunchEnd   *string `json:"almocoFim,omitempty"`
	HTPStart   *string `json:"htpInicio,omitempty"`
	HTPEnd     *string `json:"htpFim,omitempty"`
	LastLat    *float64
	LastLon    *float64

	// Derived on read.
	LunchMinutes  *int    `json:"almocoMinutos,omitempty"`
	WorkedHours   *string `json:"horasTrabalhadas,omitempty"`
	HTPHours      *string `json:"horasHTP,omitempty"`
}

// minutesOf parses "HH:MM" into minutes since midnight.
func minutesOf(hhmm string) (int, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return 0, fmt.Errorf("bad time %q: %w", hhmm, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func formatMinutes(m int) string {
	if m < 0 {
		m = 0
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// Derive fills the computed fields: lunch duration, total worked hours
// (entry to exit minus lunch) and the HTP block, for whichever pairs are
// complete.
func (r *Record) Derive() {
	lunch := 0
	if r.LunchStart != nil && r.LunchEnd != nil {
		a, errA := minutesOf(*r.LunchStart)
		b, errB := minutesOf(*r.LunchEnd)
		if errA == nil && errB == nil && b >= a {
			lunch = b - a
			r.LunchMinutes = &lunch
		}
	}
	if r.Entry != nil && r.Exit != nil {
		a, errA := minutesOf(*r.Entry)
		b, errB := minutesOf(*r.Exit)
		if errA == nil && errB == nil && b >= a {
			worked := formatMinutes(b - a - lunch)
			r.WorkedHours = &worked
		}
	}
	if r.HTPStart != nil && r.HTPEnd != nil {
		a, errA := minutesOf(*r.HTPStart)
		b, errB := minutesOf(*r.HTPEnd)
		if errA == nil && errB == nil && b >= a {
			htp := formatMinutes(b - a)
			r.HTPHours = &htp
		}
	}
}

// checkOrder enforces monotonic consistency of the day's times: entry <
// lunch-start < lunch-end < exit, and htp-start < htp-end, for whichever
// events are present once the new event is applied.
func checkOrder(r Record, event EventType, hhmm string) error {
	set := func(dst **string) {
		v := hhmm
		*dst = &v
	}
	switch event {
	case EventEntry:
		set(&r.Entry)
	case EventExit:
		set(&r.Exit)
	case EventLunchStart:
		set(&r.LunchStart)
	case EventLunchEnd:
		set(&r.LunchEnd)
	case EventHTPStart:
		set(&r.HTPStart)
	case EventHTPEnd:
		set(&r.HTPEnd)
	}

	chains := [][]*string{
		{r.Entry, r.LunchStart, r.LunchEnd, r.Exit},
		{r.HTPStart, r.HTPEnd},
	}
	for _, chain := range chains {
		prev := -1
		for _, v := range chain {
			if v == nil {
				continue
			}
			m, err := minutesOf(*v)
			if err != nil {
				return err
			}
			// Strictly increasing: two marks in the same minute are a
			// double tap, not a zero-length lunch or shift.
			if prev >= 0 && m <= prev {
				return fmt.Errorf("event %s at %s breaks the day's time order", event, hhmm)
			}
			prev = m
		}
	}
	return nil
}
