package model

import "testing"

func TestWorkingSlotCounts(t *testing.T) {
	cal := DefaultCalendar()
	want := map[Day]int{
		Monday:    16,
		Tuesday:   17,
		Wednesday: 15,
		Thursday:  16,
		Friday:    15,
	}
	for d, n := range want {
		if got := len(cal.WorkingSlots(d)); got != n {
			t.Errorf("%s: %d working slots, want %d", d, got, n)
		}
	}
}

func TestClosures(t *testing.T) {
	cal := DefaultCalendar()
	lunch, _ := ParseSlot("12:30")
	for _, d := range Days() {
		if !cal.Closed(d, lunch) {
			t.Errorf("%s 12:30 should be closed", d)
		}
	}
	noon, _ := ParseSlot("12:00")
	if !cal.Closed(Monday, noon) || !cal.Closed(Thursday, noon) {
		t.Error("12:00 should be closed on Monday and Thursday")
	}
	if cal.Closed(Tuesday, noon) {
		t.Error("12:00 should be open on Tuesday")
	}
	late, _ := ParseSlot("17:00")
	if !cal.Closed(Wednesday, late) || !cal.Closed(Friday, late) {
		t.Error("17:00 should be closed on Wednesday and Friday")
	}
	if cal.Closed(Monday, late) {
		t.Error("17:00 should be open on Monday")
	}
}

func TestHalfSlots(t *testing.T) {
	cal := DefaultCalendar()
	for _, d := range Days() {
		if got := len(cal.HalfSlots(d, MorningHalf)); got != 6 {
			t.Errorf("%s morning: %d slots, want 6", d, got)
		}
	}
	afternoons := map[Day]int{
		Monday: 9, Tuesday: 9, Wednesday: 7, Thursday: 9, Friday: 7,
	}
	for d, n := range afternoons {
		if got := len(cal.HalfSlots(d, AfternoonHalf)); got != n {
			t.Errorf("%s afternoon: %d slots, want %d", d, got, n)
		}
	}
}

func TestPhoneTarget(t *testing.T) {
	cal := DefaultCalendar()
	nine, _ := ParseSlot("09:00")
	if target, ok := cal.PhoneTarget(Monday, nine); !ok || target != 4 {
		t.Errorf("Monday 09:00: target %d ok=%v, want 4 true", target, ok)
	}
	open, _ := ParseSlot("08:30")
	if _, ok := cal.PhoneTarget(Monday, open); ok {
		t.Error("08:30 is outside the coverage bands")
	}
	early, _ := ParseSlot("13:30")
	if _, ok := cal.PhoneTarget(Monday, early); ok {
		t.Error("13:30 is outside the coverage bands")
	}
	two, _ := ParseSlot("14:00")
	if target, _ := cal.PhoneTarget(Friday, two); target != 5 {
		t.Errorf("Friday 14:00: target %d, want 5", target)
	}
	if target, _ := cal.PhoneTarget(Tuesday, two); target != 4 {
		t.Errorf("Tuesday 14:00: target %d, want 4", target)
	}
	noon, _ := ParseSlot("12:00")
	if _, ok := cal.PhoneTarget(Monday, noon); ok {
		t.Error("closed slot must not carry a target")
	}
}

func TestBlockWindowsTileCoverageBand(t *testing.T) {
	cal := DefaultCalendar()
	for _, d := range Days() {
		for _, h := range Halves() {
			early := cal.BlockWindow(d, h, EarlyWindow)
			late := cal.BlockWindow(d, h, LateWindow)
			if len(early) != cal.BlockLength(d, h) || len(late) != cal.BlockLength(d, h) {
				t.Errorf("%s %s: window sizes %d/%d, want %d", d, h, len(early), len(late), cal.BlockLength(d, h))
			}
			seen := map[Slot]bool{}
			for _, s := range append(append([]Slot{}, early...), late...) {
				if seen[s] {
					t.Errorf("%s %s: slot %s in both windows", d, h, s.Label())
				}
				seen[s] = true
				if _, ok := cal.PhoneTarget(d, s); !ok {
					t.Errorf("%s %s: window slot %s outside coverage band", d, h, s.Label())
				}
			}
		}
	}
}

func TestParseDayAndSlot(t *testing.T) {
	d, err := ParseDay("Wednesday")
	if err != nil || d != Wednesday {
		t.Fatalf("ParseDay: %v %v", d, err)
	}
	if _, err := ParseDay("Sunday"); err == nil {
		t.Error("Sunday should be rejected")
	}
	for _, s := range Slots() {
		back, err := ParseSlot(s.Label())
		if err != nil || back != s {
			t.Fatalf("ParseSlot(%s): %v %v", s.Label(), back, err)
		}
	}
	if _, err := ParseSlot("08:45"); err == nil {
		t.Error("off-grid label should be rejected")
	}
}

func TestContinuitySpan(t *testing.T) {
	cal := DefaultCalendar()
	if w, c := cal.ContinuitySpan(Monday, MorningHalf); w != 4 || c != 3 {
		t.Errorf("morning span: %d/%d, want 4/3", w, c)
	}
	if w, c := cal.ContinuitySpan(Monday, AfternoonHalf); w != 5 || c != 4 {
		t.Errorf("Monday afternoon span: %d/%d, want 5/4", w, c)
	}
	if w, c := cal.ContinuitySpan(Friday, AfternoonHalf); w != 4 || c != 3 {
		t.Errorf("Friday afternoon span: %d/%d, want 4/3", w, c)
	}
}

func TestHasAfternoonRest(t *testing.T) {
	cal := DefaultCalendar()
	if cal.HasAfternoonRest(Friday) {
		t.Error("Friday afternoon must not count as a rest half-day")
	}
	if !cal.HasAfternoonRest(Monday) {
		t.Error("Monday afternoon should count as a rest half-day")
	}
}
