package rules

import (
	"fmt"

	"github.com/squadplan/squadplan/core/fabric"
	"github.com/squadplan/squadplan/core/model"
)

// RestCapacity states a count that coverage, block shaping and the phone-free
// rule already imply together but that no single one of them exposes to
// interval propagation.
//
// In a half-day whose coverage band is tiled exactly by the two block
// windows, a window with target T holds exactly T employees, so at most the
// two window targets combined can be on the phone without a rest indicator.
// Every further phone-permitted employee must take that half as the rest
// half-day. Without this sum the search only discovers the shortfall after
// committing individual slots, one rest pattern at a time.
type RestCapacity struct{}

func (RestCapacity) Name() string { return RuleRestCapacity }

func (RestCapacity) Requires() []string {
	return []string{RulePhoneFreeHalfDay, RulePhoneCoverage, RulePhoneBlocks}
}

func (RestCapacity) Apply(m *fabric.Model, _ Config) error {
	cal := m.Calendar()
	phone := model.PhoneRole()
	var permitted []model.EmployeeID
	for _, e := range m.Roster().Employees {
		if e.Permitted(phone) {
			permitted = append(permitted, e.ID)
		}
	}
	for _, d := range model.Days() {
		for _, h := range model.Halves() {
			if h == model.AfternoonHalf && !cal.HasAfternoonRest(d) {
				continue
			}
			capacity, ok := blockCapacity(cal, d, h)
			if !ok {
				continue
			}
			lo := len(permitted) - capacity
			if lo <= 0 {
				continue
			}
			var inds []fabric.BoolVar
			for _, id := range permitted {
				inds = append(inds, m.HalfDay(fabric.HalfDayKey{Employee: id, Day: d, Half: h}))
			}
			name := fmt.Sprintf("rest_capacity/%s/%s", d, h)
			m.AddGe(name, fabric.Sum(inds...), lo)
		}
	}
	return nil
}

// blockCapacity returns the maximum number of employees the half-day's block
// windows can carry. It reports false when the half has a slot outside both
// windows that may still carry phone duty; such a slot lets an employee stay
// off rest without holding a block, so no capacity bound holds there.
func blockCapacity(cal model.Calendar, d model.Day, h model.Half) (int, bool) {
	inWindow := make(map[model.Slot]bool)
	capacity := 0
	for _, w := range []model.Window{model.EarlyWindow, model.LateWindow} {
		slots := cal.BlockWindow(d, h, w)
		target := 0
		usable := true
		for i, s := range slots {
			inWindow[s] = true
			t, banded := cal.PhoneTarget(d, s)
			if !banded || cal.PhoneClosedAt(d, s) {
				usable = false
				continue
			}
			if i == 0 || t < target {
				target = t
			}
		}
		if usable {
			capacity += target
		}
	}
	for _, s := range cal.HalfSlots(d, h) {
		if cal.PhoneClosedAt(d, s) {
			continue
		}
		if !inWindow[s] {
			return 0, false
		}
	}
	return capacity, true
}
