package timeclock

import "testing"

func strp(s string) *string { return &s }

func TestParseEventType(t *testing.T) {
	for _, name := range []string{"entry", "exit", "lunch-start", "lunch-end", "htp-start", "htp-end"} {
		if _, ok := ParseEventType(name); !ok {
			t.Errorf("%q should parse", name)
		}
	}
	if _, ok := ParseEventType("coffee-break"); ok {
		t.Error("unknown event type should not parse")
	}
}

func TestDeriveWorkedHours(t *testing.T) {
	r := Record{
		Entry:      strp("08:00"),
		LunchStart: strp("12:00"),
		LunchEnd:   strp("13:00"),
		Exit:       strp("17:30"),
		HTPStart:   strp("18:00"),
		HTPEnd:     strp("19:30"),
	}
	r.Derive()

	if r.LunchMinutes == nil || *r.LunchMinutes != 60 {
		t.Fatalf("lunch minutes = %v, want 60", r.LunchMinutes)
	}
	// 9h30 on the clock minus 1h lunch.
	if r.WorkedHours == nil || *r.WorkedHours != "08:30" {
		t.Fatalf("worked hours = %v, want 08:30", r.WorkedHours)
	}
	if r.HTPHours == nil || *r.HTPHours != "01:30" {
		t.Fatalf("htp hours = %v, want 01:30", r.HTPHours)
	}
}

func TestDerivePartialDay(t *testing.T) {
	r := Record{Entry: strp("08:00")}
	r.Derive()
	if r.WorkedHours != nil || r.LunchMinutes != nil || r.HTPHours != nil {
		t.Fatal("derived fields must stay nil for incomplete pairs")
	}
}

func TestCheckOrderRejectsBackwardsExit(t *testing.T) {
	day := Record{Entry: strp("08:00"), LunchStart: strp("12:00"), LunchEnd: strp("13:00")}
	if err := checkOrder(day, EventExit, "11:00"); err == nil {
		t.Fatal("exit before lunch-end must be rejected")
	}
	if err := checkOrder(day, EventExit, "17:00"); err != nil {
		t.Fatalf("valid exit rejected: %v", err)
	}
}

func TestCheckOrderRejectsEqualTimes(t *testing.T) {
	day := Record{Entry: strp("08:00"), LunchStart: strp("12:00")}
	if err := checkOrder(day, EventLunchEnd, "12:00"); err == nil {
		t.Fatal("lunch-end in the same minute as lunch-start must be rejected")
	}
	if err := checkOrder(day, EventLunchEnd, "12:01"); err != nil {
		t.Fatalf("lunch-end one minute later rejected: %v", err)
	}
	if err := checkOrder(Record{Entry: strp("08:00")}, EventExit, "08:00"); err == nil {
		t.Fatal("exit in the same minute as entry must be rejected")
	}
}

func TestCheckOrderHTPIndependentOfDayChain(t *testing.T) {
	day := Record{Entry: strp("08:00"), Exit: strp("12:00")}
	// HTP block after the working day is fine.
	if err := checkOrder(day, EventHTPStart, "14:00"); err != nil {
		t.Fatalf("htp-start rejected: %v", err)
	}
	day.HTPStart = strp("14:00")
	if err := checkOrder(day, EventHTPEnd, "13:00"); err == nil {
		t.Fatal("htp-end before htp-start must be rejected")
	}
}

func TestCheckOrderFirstEventOfDay(t *testing.T) {
	if err := checkOrder(Record{}, EventEntry, "07:55"); err != nil {
		t.Fatalf("first entry of the day rejected: %v", err)
	}
}
