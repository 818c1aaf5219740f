package model

import "fmt"

// Day is one of the five weekdays of the schedule.
type Day int

const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday
)

// Days returns the weekdays in order.
func Days() []Day { return []Day{Monday, Tuesday, Wednesday, Thursday, Friday} }

// String returns the English weekday name.
func (d Day) String() string {
	switch d {
	case Monday:
		return "Monday"
	case Tuesday:
		return "Tuesday"
	case Wednesday:
		return "Wednesday"
	case Thursday:
		return "Thursday"
	case Friday:
		return "Friday"
	default:
		return "unknown"
	}
}

// Slot is a 30-minute tick on the fixed 08:30-17:30 grid.
type Slot int

// SlotCount is the number of grid ticks per day (08:30 through 17:30).
const SlotCount = 19

const gridStartMinutes = 8*60 + 30

// Slots returns every grid tick of a day, open or not.
func Slots() []Slot {
	out := make([]Slot, SlotCount)
	for i := range out {
		out[i] = Slot(i)
	}
	return out
}

// Label formats the slot as its wall-clock start time, e.g. "08:30".
func (s Slot) Label() string {
	m := gridStartMinutes + int(s)*30
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// ParseDay maps an English weekday name to its Day.
func ParseDay(name string) (Day, error) {
	for _, d := range Days() {
		if d.String() == name {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown day %q", name)
}

// ParseSlot maps a wall-clock label such as "08:30" back to its grid tick.
func ParseSlot(label string) (Slot, error) {
	for _, s := range Slots() {
		if s.Label() == label {
			return s, nil
		}
	}
	return 0, fmt.Errorf("slot %q is not on the 08:30-17:30 grid", label)
}

// Half distinguishes the two half-days.
type Half int

const (
	MorningHalf Half = iota
	AfternoonHalf
)

// String returns "morning" or "afternoon".
func (h Half) String() string {
	if h == MorningHalf {
		return "morning"
	}
	return "afternoon"
}

// Halves returns both half-days in order.
func Halves() []Half { return []Half{MorningHalf, AfternoonHalf} }

// Window distinguishes the early and late phone block of a half-day.
type Window int

const (
	EarlyWindow Window = iota
	LateWindow
)

// String returns "early" or "late".
func (w Window) String() string {
	if w == EarlyWindow {
		return "early"
	}
	return "late"
}

// DaySlot is a comparable (day, slot) pair, used to mark individual ticks.
type DaySlot struct {
	Day  Day
	Slot Slot
}

// Named grid indices used when building the default calendar.
const (
	slot0900 Slot = 1
	slot1130 Slot = 6
	slot1200 Slot = 7
	slot1230 Slot = 8
	slot1300 Slot = 9
	slot1330 Slot = 10
	slot1400 Slot = 11
	slot1500 Slot = 13
	slot1530 Slot = 14
	slot1600 Slot = 15
	slot1630 Slot = 16
	slot1700 Slot = 17
	slot1730 Slot = 18
)

// Calendar captures the fixed weekly opening pattern along with the phone
// coverage targets. Closures: lunch (12:30, 13:00) every day, 12:00 on
// Monday and Thursday, and the 17:00-18:00 hour on Wednesday and Friday.
type Calendar struct {
	// MorningTarget is the phone headcount required in the 09:00-12:00 band.
	MorningTarget int
	// AfternoonTarget is the phone headcount required in the afternoon band.
	AfternoonTarget int
	// FridayAfternoonTarget overrides AfternoonTarget on Friday.
	FridayAfternoonTarget int
	// PhoneClosed marks working slots whose phone headcount is forced to
	// zero. Empty by default: off-band slots are simply unconstrained.
	PhoneClosed map[DaySlot]bool
}

// DefaultCalendar returns the standard opening pattern and coverage targets.
func DefaultCalendar() Calendar {
	return Calendar{
		MorningTarget:         4,
		AfternoonTarget:       4,
		FridayAfternoonTarget: 5,
	}
}

// Closed reports whether the slot is outside the day's opening hours.
func (c Calendar) Closed(d Day, s Slot) bool {
	if s == slot1230 || s == slot1300 {
		return true
	}
	if (d == Monday || d == Thursday) && s == slot1200 {
		return true
	}
	if (d == Wednesday || d == Friday) && (s == slot1700 || s == slot1730) {
		return true
	}
	return false
}

// WorkingSlots returns the day's open slots in order.
func (c Calendar) WorkingSlots(d Day) []Slot {
	var out []Slot
	for _, s := range Slots() {
		if !c.Closed(d, s) {
			out = append(out, s)
		}
	}
	return out
}

// HalfSlots returns the working slots of a half-day. The morning half is the
// 09:00-12:00 band; the afternoon half runs from 13:30 to closing.
func (c Calendar) HalfSlots(d Day, h Half) []Slot {
	var out []Slot
	for _, s := range Slots() {
		if c.Closed(d, s) {
			continue
		}
		switch h {
		case MorningHalf:
			if s >= slot0900 && s <= slot1130 {
				out = append(out, s)
			}
		case AfternoonHalf:
			if s >= slot1330 {
				out = append(out, s)
			}
		}
	}
	return out
}

// PhoneTarget returns the required phone headcount for the slot and whether
// the slot is inside a coverage band at all.
func (c Calendar) PhoneTarget(d Day, s Slot) (int, bool) {
	if c.Closed(d, s) {
		return 0, false
	}
	if s >= slot0900 && s <= slot1130 {
		return c.MorningTarget, true
	}
	if s >= slot1400 {
		if d == Friday {
			return c.FridayAfternoonTarget, true
		}
		return c.AfternoonTarget, true
	}
	return 0, false
}

// PhoneClosedAt reports whether the slot was explicitly marked phone-closed.
func (c Calendar) PhoneClosedAt(d Day, s Slot) bool {
	return c.PhoneClosed[DaySlot{Day: d, Slot: s}]
}

// BlockLength returns the mandatory phone block length of a half-day. The
// shortened Wednesday and Friday afternoons use 3-slot blocks.
func (c Calendar) BlockLength(d Day, h Half) int {
	if h == MorningHalf {
		return 3
	}
	if d == Wednesday || d == Friday {
		return 3
	}
	return 4
}

// BlockWindow returns the slots of the early or late phone block of a
// half-day. Windows tile the coverage band exactly.
func (c Calendar) BlockWindow(d Day, h Half, w Window) []Slot {
	if h == MorningHalf {
		if w == EarlyWindow {
			return []Slot{slot0900, slot0900 + 1, slot0900 + 2}
		}
		return []Slot{slot1130 - 2, slot1130 - 1, slot1130}
	}
	if d == Wednesday || d == Friday {
		if w == EarlyWindow {
			return []Slot{slot1400, slot1400 + 1, slot1500}
		}
		return []Slot{slot1530, slot1600, slot1630}
	}
	if w == EarlyWindow {
		return []Slot{slot1400, slot1400 + 1, slot1500, slot1530}
	}
	return []Slot{slot1600, slot1630, slot1700, slot1730}
}

// HasAfternoonRest reports whether the day's afternoon may count as the
// weekly phone-free half-day. Friday afternoon is excluded from the pool.
func (c Calendar) HasAfternoonRest(d Day) bool { return d != Friday }

// ContinuitySpan returns the sliding window size and the maximum number of
// assigned slots allowed inside it, for non-phone roles in the given
// half-day.
func (c Calendar) ContinuitySpan(d Day, h Half) (window, cap int) {
	if h == MorningHalf {
		return 4, 3
	}
	if d == Friday {
		return 4, 3
	}
	return 5, 4
}

// ContinuityBand returns the fixed slot list sliding windows are taken over.
// Closed ticks inside the band stay listed; their variables are pinned false
// and contribute nothing to a window sum.
func (c Calendar) ContinuityBand(d Day, h Half) []Slot {
	var out []Slot
	if h == MorningHalf {
		for s := slot0900; s <= slot1130; s++ {
			out = append(out, s)
		}
		return out
	}
	for s := slot1330; s <= slot1730; s++ {
		out = append(out, s)
	}
	return out
}
