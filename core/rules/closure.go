package rules

import (
	"github.com/squadplan/squadplan/core/fabric"
	"github.com/squadplan/squadplan/core/model"
)

// CalendarClosure pins every assignment inside a closed slot to false.
type CalendarClosure struct{}

func (CalendarClosure) Name() string       { return RuleCalendarClosure }
func (CalendarClosure) Requires() []string { return nil }

func (CalendarClosure) Apply(m *fabric.Model, _ Config) error {
	cal := m.Calendar()
	for _, e := range m.Roster().Employees {
		for _, r := range model.AllRoles() {
			for _, d := range model.Days() {
				for _, s := range model.Slots() {
					if !cal.Closed(d, s) {
						continue
					}
					if v, ok := m.Assign(fabric.AssignKey{Employee: e.ID, Role: r, Day: d, Slot: s}); ok {
						m.Fix(v, false)
					}
				}
			}
		}
	}
	return nil
}
